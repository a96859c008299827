package markdown

import (
	"context"
	"fmt"
	"os"

	"github.com/utahvbr/bizdirctl/internal/directory"
	"gopkg.in/yaml.v3"
)

// metadata is the on-disk shape of metadata.yaml.
type metadata struct {
	Objects   map[string]directory.ObjectInfo `yaml:"objects"`
	Picklists map[string]directory.Picklist   `yaml:"picklists"`
}

func (s *Store) loadMetadata() (metadata, error) {
	m := metadata{
		Objects:   map[string]directory.ObjectInfo{},
		Picklists: map[string]directory.Picklist{},
	}
	data, err := os.ReadFile(s.metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, fmt.Errorf("%w: reading metadata: %v", directory.ErrStorage, err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("%w: parsing metadata: %v", directory.ErrStorage, err)
	}
	if m.Objects == nil {
		m.Objects = map[string]directory.ObjectInfo{}
	}
	if m.Picklists == nil {
		m.Picklists = map[string]directory.Picklist{}
	}
	return m, nil
}

func (s *Store) saveMetadata(m metadata) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: encoding metadata: %v", directory.ErrStorage, err)
	}
	return atomicWrite(s.metaPath, data)
}

// ObjectInfo returns the stored metadata for an object.
func (s *Store) ObjectInfo(ctx context.Context, objectAPIName string) (directory.ObjectInfo, error) {
	s.metaMu.Lock()
	defer s.metaMu.Unlock()

	m, err := s.loadMetadata()
	if err != nil {
		return directory.ObjectInfo{}, err
	}
	info, ok := m.Objects[objectAPIName]
	if !ok {
		return directory.ObjectInfo{}, fmt.Errorf("%w: object %s", directory.ErrNotFound, objectAPIName)
	}
	return info, nil
}

// PicklistValues returns the stored option list for a field and record type.
func (s *Store) PicklistValues(ctx context.Context, req directory.PicklistRequest) (directory.Picklist, error) {
	s.metaMu.Lock()
	defer s.metaMu.Unlock()

	m, err := s.loadMetadata()
	if err != nil {
		return directory.Picklist{}, err
	}
	p, ok := m.Picklists[directory.PicklistKey(req.RecordTypeID, req.Field)]
	if !ok {
		return directory.Picklist{}, fmt.Errorf("%w: no picklist values for %s (record type %q)", directory.ErrNotFound, req.Field, req.RecordTypeID)
	}
	if p.Values == nil {
		p.Values = []directory.PicklistValue{}
	}
	return p, nil
}

// PutObjectInfo stores or replaces an object's metadata.
func (s *Store) PutObjectInfo(info directory.ObjectInfo) error {
	if info.APIName == "" {
		return fmt.Errorf("%w: object API name must not be empty", directory.ErrValidation)
	}
	s.metaMu.Lock()
	defer s.metaMu.Unlock()

	m, err := s.loadMetadata()
	if err != nil {
		return err
	}
	m.Objects[info.APIName] = info
	return s.saveMetadata(m)
}

// PutPicklist stores or replaces the option list for a field and record type.
func (s *Store) PutPicklist(p directory.Picklist) error {
	if p.Field == "" {
		return fmt.Errorf("%w: picklist field must not be empty", directory.ErrValidation)
	}
	s.metaMu.Lock()
	defer s.metaMu.Unlock()

	m, err := s.loadMetadata()
	if err != nil {
		return err
	}
	m.Picklists[directory.PicklistKey(p.RecordTypeID, p.Field)] = p
	return s.saveMetadata(m)
}
