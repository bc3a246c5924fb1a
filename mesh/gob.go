package mesh

import (
	"encoding/gob"
	"fmt"
	"os"
)

func (m *Mesh) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" mesh.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf(" mesh.SaveGob %v", err)
	}
	f.Close()
	return nil
}

func LoadGob(fp string) (*Mesh, error) {
	var m Mesh
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	enc := gob.NewDecoder(f)
	err = enc.Decode(&m)
	if err != nil {
		return nil, err
	}
	f.Close()
	return &m, nil
}
