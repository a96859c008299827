package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/record"
	"gopkg.in/yaml.v3"
)

// Store implements directory.Store using one Markdown file with YAML
// front-matter per business and a single metadata.yaml for object info and
// picklists.
type Store struct {
	recordsDir string // e.g. ~/.bizdirctl/records/
	metaPath   string // e.g. ~/.bizdirctl/metadata.yaml

	metaMu sync.Mutex
}

// New creates a new Markdown file directory backend.
func New(dataDir string) (*Store, error) {
	recordsDir := filepath.Join(dataDir, "records")
	if err := os.MkdirAll(recordsDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating records directory: %v", directory.ErrStorage, err)
	}
	return &Store{
		recordsDir: recordsDir,
		metaPath:   filepath.Join(dataDir, "metadata.yaml"),
	}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) recordPath(id string) string {
	return filepath.Join(s.recordsDir, id+".md")
}

type frontMatter struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Categories []string `yaml:"categories"`
	County     string   `yaml:"county"`
	City       string   `yaml:"city,omitempty"`
	Phone      string   `yaml:"phone,omitempty"`
	Email      string   `yaml:"email,omitempty"`
	Website    string   `yaml:"website,omitempty"`
	Address    string   `yaml:"address,omitempty"`
	Contact    string   `yaml:"contact,omitempty"`
	CreatedAt  string   `yaml:"created_at"`
	UpdatedAt  string   `yaml:"updated_at"`
}

func (s *Store) marshal(r record.Record) ([]byte, error) {
	fm := frontMatter{
		ID:         r.ID,
		Name:       r.Name,
		Categories: r.Categories,
		County:     r.County,
		City:       r.City,
		Phone:      r.Phone,
		Email:      r.Email,
		Website:    r.Website,
		Address:    r.Address,
		Contact:    r.Contact,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.UTC().Format(time.RFC3339),
	}
	head, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding front-matter: %v", directory.ErrStorage, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	b.WriteString(r.Description)
	return []byte(b.String()), nil
}

func (s *Store) unmarshal(data []byte) (record.Record, error) {
	var fm frontMatter
	content, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: parsing front-matter: %v", directory.ErrStorage, err)
	}

	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: parsing created_at: %v", directory.ErrStorage, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, fm.UpdatedAt)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: parsing updated_at: %v", directory.ErrStorage, err)
	}

	categories := fm.Categories
	if categories == nil {
		categories = []string{}
	}

	return record.Record{
		Summary: record.Summary{
			ID:         fm.ID,
			Name:       fm.Name,
			Categories: categories,
			County:     fm.County,
			City:       fm.City,
			Phone:      fm.Phone,
			Email:      fm.Email,
			Website:    fm.Website,
		},
		Description: strings.TrimSpace(string(content)),
		Address:     fm.Address,
		Contact:     fm.Contact,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", directory.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", directory.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", directory.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", directory.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", directory.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", directory.ErrStorage, err)
	}

	return nil
}

// CreateRecord persists a new business record as a Markdown file.
func (s *Store) CreateRecord(r record.Record) error {
	if err := record.ValidateID(r.ID); err != nil {
		return fmt.Errorf("%w: %v", directory.ErrValidation, err)
	}
	if err := record.ValidateName(r.Name); err != nil {
		return fmt.Errorf("%w: %v", directory.ErrValidation, err)
	}

	path := s.recordPath(r.ID)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: record %s already exists", directory.ErrValidation, r.ID)
	}

	data, err := s.marshal(r)
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

// GetRecord retrieves a record by ID.
func (s *Store) GetRecord(ctx context.Context, id string) (record.Record, error) {
	if err := record.ValidateID(id); err != nil {
		return record.Record{}, directory.ErrNotFound
	}
	data, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return record.Record{}, directory.ErrNotFound
		}
		return record.Record{}, fmt.Errorf("%w: reading file: %v", directory.ErrStorage, err)
	}
	return s.unmarshal(data)
}

// FilterRecords scans every record file and returns the matching summaries.
func (s *Store) FilterRecords(ctx context.Context, q directory.Query) ([]record.Summary, error) {
	results := []record.Summary{}

	err := filepath.WalkDir(s.recordsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil // skip unreadable files
		}
		r, err := s.unmarshal(data)
		if err != nil {
			return nil // skip malformed files
		}

		if q.Matches(r) {
			results = append(results, r.Summary)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: filtering records: %v", directory.ErrStorage, err)
	}

	directory.SortSummaries(results)
	return results, nil
}
