package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/utahvbr/bizdirctl/internal/directory"
)

// ObjectInfo returns the stored metadata for an object.
func (s *Store) ObjectInfo(ctx context.Context, objectAPIName string) (directory.ObjectInfo, error) {
	info := directory.ObjectInfo{
		APIName:         objectAPIName,
		RecordTypeInfos: map[string]directory.RecordTypeInfo{},
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT default_record_type_id FROM object_infos WHERE api_name = ?", objectAPIName)
	if err := row.Scan(&info.DefaultRecordTypeID); err != nil {
		if err == sql.ErrNoRows {
			return directory.ObjectInfo{}, fmt.Errorf("%w: object %s", directory.ErrNotFound, objectAPIName)
		}
		return directory.ObjectInfo{}, fmt.Errorf("%w: querying object info: %v", directory.ErrStorage, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT record_type_id, name, available, master FROM record_types WHERE object_api_name = ?",
		objectAPIName)
	if err != nil {
		return directory.ObjectInfo{}, fmt.Errorf("%w: querying record types: %v", directory.ErrStorage, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rti directory.RecordTypeInfo
		var available, master int
		if err := rows.Scan(&rti.RecordTypeID, &rti.Name, &available, &master); err != nil {
			return directory.ObjectInfo{}, fmt.Errorf("%w: scanning record type: %v", directory.ErrStorage, err)
		}
		rti.Available = available != 0
		rti.Master = master != 0
		info.RecordTypeInfos[rti.RecordTypeID] = rti
	}
	if err := rows.Err(); err != nil {
		return directory.ObjectInfo{}, fmt.Errorf("%w: iterating record types: %v", directory.ErrStorage, err)
	}
	return info, nil
}

// PicklistValues returns the stored option list for a field and record type.
func (s *Store) PicklistValues(ctx context.Context, req directory.PicklistRequest) (directory.Picklist, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT label, value FROM picklist_values WHERE record_type_id = ? AND field = ? ORDER BY position",
		req.RecordTypeID, req.Field)
	if err != nil {
		return directory.Picklist{}, fmt.Errorf("%w: querying picklist: %v", directory.ErrStorage, err)
	}
	defer rows.Close()

	p := directory.Picklist{
		Field:        req.Field,
		RecordTypeID: req.RecordTypeID,
		Values:       []directory.PicklistValue{},
	}
	for rows.Next() {
		var v directory.PicklistValue
		if err := rows.Scan(&v.Label, &v.Value); err != nil {
			return directory.Picklist{}, fmt.Errorf("%w: scanning picklist value: %v", directory.ErrStorage, err)
		}
		p.Values = append(p.Values, v)
	}
	if err := rows.Err(); err != nil {
		return directory.Picklist{}, fmt.Errorf("%w: iterating picklist: %v", directory.ErrStorage, err)
	}
	if len(p.Values) == 0 {
		return directory.Picklist{}, fmt.Errorf("%w: no picklist values for %s (record type %q)", directory.ErrNotFound, req.Field, req.RecordTypeID)
	}
	return p, nil
}

// PutObjectInfo stores or replaces an object's metadata.
func (s *Store) PutObjectInfo(info directory.ObjectInfo) error {
	if info.APIName == "" {
		return fmt.Errorf("%w: object API name must not be empty", directory.ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", directory.ErrStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(
		`INSERT INTO object_infos (api_name, default_record_type_id) VALUES (?, ?)
		 ON CONFLICT(api_name) DO UPDATE SET default_record_type_id = excluded.default_record_type_id`,
		info.APIName, info.DefaultRecordTypeID,
	); err != nil {
		return fmt.Errorf("%w: upserting object info: %v", directory.ErrStorage, err)
	}
	if _, err := tx.Exec("DELETE FROM record_types WHERE object_api_name = ?", info.APIName); err != nil {
		return fmt.Errorf("%w: clearing record types: %v", directory.ErrStorage, err)
	}
	for id, rti := range info.RecordTypeInfos {
		if rti.RecordTypeID == "" {
			rti.RecordTypeID = id
		}
		if _, err := tx.Exec(
			"INSERT INTO record_types (object_api_name, record_type_id, name, available, master) VALUES (?, ?, ?, ?, ?)",
			info.APIName, rti.RecordTypeID, rti.Name, boolInt(rti.Available), boolInt(rti.Master),
		); err != nil {
			return fmt.Errorf("%w: inserting record type: %v", directory.ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing object info: %v", directory.ErrStorage, err)
	}
	return nil
}

// PutPicklist stores or replaces the option list for a field and record type.
func (s *Store) PutPicklist(p directory.Picklist) error {
	if p.Field == "" {
		return fmt.Errorf("%w: picklist field must not be empty", directory.ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", directory.ErrStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(
		"DELETE FROM picklist_values WHERE record_type_id = ? AND field = ?",
		p.RecordTypeID, p.Field,
	); err != nil {
		return fmt.Errorf("%w: clearing picklist: %v", directory.ErrStorage, err)
	}
	for i, v := range p.Values {
		if _, err := tx.Exec(
			"INSERT INTO picklist_values (record_type_id, field, position, label, value) VALUES (?, ?, ?, ?, ?)",
			p.RecordTypeID, p.Field, i, v.Label, v.Value,
		); err != nil {
			return fmt.Errorf("%w: inserting picklist value: %v", directory.ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing picklist: %v", directory.ErrStorage, err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
