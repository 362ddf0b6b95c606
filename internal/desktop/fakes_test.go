package desktop

import (
	"errors"
	"fmt"
)

// testIDs returns n distinct identifiers
func testIDs(n int) []ID {
	ids := make([]ID, n)
	for i := range ids {
		id, err := ParseID(fmt.Sprintf("%08x-0000-4000-8000-%012x", 0xD0000000+i, i))
		if err != nil {
			panic(err)
		}
		ids[i] = id
	}
	return ids
}

type fakeArray struct {
	ids      []ID
	countErr error
	atErr    error
	released *int
}

func (a *fakeArray) Count() (int, error) {
	if a.countErr != nil {
		return 0, a.countErr
	}
	return len(a.ids), nil
}

func (a *fakeArray) IDAt(index int) (ID, error) {
	if a.atErr != nil {
		return ID{}, a.atErr
	}
	if index < 0 || index >= len(a.ids) {
		return ID{}, errors.New("E_INVALIDARG")
	}
	return a.ids[index], nil
}

func (a *fakeArray) Release() {
	*a.released++
}

type fakeEnumerator struct {
	ids      []ID
	err      error
	countErr error
	atErr    error
	calls    int
	released int
}

func (e *fakeEnumerator) GetDesktops() (Array, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return &fakeArray{ids: e.ids, countErr: e.countErr, atErr: e.atErr, released: &e.released}, nil
}

type fakeRegistry struct {
	blobs map[string][]byte
	reads int
}

func (r *fakeRegistry) ReadBinary(key, value string) ([]byte, error) {
	r.reads++
	blob, ok := r.blobs[key+`\`+value]
	if !ok {
		return nil, errors.New("the system cannot find the file specified")
	}
	return blob, nil
}

func registryWith(ids []ID) *fakeRegistry {
	return &fakeRegistry{blobs: map[string][]byte{
		DefaultRegistryKey + `\` + DefaultRegistryValue: EncodeList(ids),
	}}
}
