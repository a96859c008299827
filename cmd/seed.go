package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/facet"
	"github.com/utahvbr/bizdirctl/internal/record"
	"github.com/utahvbr/bizdirctl/internal/ui"
)

// Record type identifiers of the seeded object.
const (
	seedMasterRecordTypeID   = "012000000000000AAA"
	seedBusinessRecordTypeID = "0125f000000BizRAA"
)

var seedCategories = []directory.PicklistValue{
	{Label: "Agriculture", Value: "Agriculture"},
	{Label: "Construction", Value: "Construction"},
	{Label: "Manufacturing", Value: "Manufacturing"},
	{Label: "Retail", Value: "Retail"},
	{Label: "Professional Services", Value: "Professional_Services"},
	{Label: "Health Care", Value: "Health_Care"},
	{Label: "Food Services", Value: "Food_Services"},
	{Label: "Technology", Value: "Technology"},
	{Label: "Transportation", Value: "Transportation"},
	{Label: "Real Estate", Value: "Real_Estate"},
	{Label: "Arts & Entertainment", Value: "Arts_Entertainment"},
	{Label: "Education", Value: "Education"},
}

var seedCounties = []directory.PicklistValue{
	{Label: "Beaver", Value: "Beaver"},
	{Label: "Box Elder", Value: "Box_Elder"},
	{Label: "Cache", Value: "Cache"},
	{Label: "Carbon", Value: "Carbon"},
	{Label: "Daggett", Value: "Daggett"},
	{Label: "Davis", Value: "Davis"},
	{Label: "Duchesne", Value: "Duchesne"},
	{Label: "Emery", Value: "Emery"},
	{Label: "Garfield", Value: "Garfield"},
	{Label: "Grand", Value: "Grand"},
	{Label: "Iron", Value: "Iron"},
	{Label: "Juab", Value: "Juab"},
	{Label: "Kane", Value: "Kane"},
	{Label: "Millard", Value: "Millard"},
	{Label: "Morgan", Value: "Morgan"},
	{Label: "Piute", Value: "Piute"},
	{Label: "Rich", Value: "Rich"},
	{Label: "Salt Lake", Value: "Salt_Lake"},
	{Label: "San Juan", Value: "San_Juan"},
	{Label: "Sanpete", Value: "Sanpete"},
	{Label: "Sevier", Value: "Sevier"},
	{Label: "Summit", Value: "Summit"},
	{Label: "Tooele", Value: "Tooele"},
	{Label: "Uintah", Value: "Uintah"},
	{Label: "Utah", Value: "Utah"},
	{Label: "Wasatch", Value: "Wasatch"},
	{Label: "Washington", Value: "Washington"},
	{Label: "Wayne", Value: "Wayne"},
	{Label: "Weber", Value: "Weber"},
}

// seedCities are a few towns per county; counties without an entry get no city.
var seedCities = map[string][]string{
	"Salt_Lake":  {"Salt Lake City", "Sandy", "West Valley City", "Murray"},
	"Utah":       {"Provo", "Orem", "Lehi", "American Fork"},
	"Davis":      {"Layton", "Bountiful", "Kaysville"},
	"Weber":      {"Ogden", "Roy"},
	"Cache":      {"Logan", "Smithfield"},
	"Washington": {"St. George", "Hurricane"},
	"Iron":       {"Cedar City"},
	"Summit":     {"Park City"},
	"Grand":      {"Moab"},
	"Tooele":     {"Tooele", "Grantsville"},
}

var seedNamePrefixes = []string{
	"Beehive", "Wasatch", "Canyon", "Red Rock", "Arches", "Bonneville", "Timpanogos",
	"Uinta", "Deseret", "Golden Spike", "Great Basin", "Sego Lily", "Alpine", "Cottonwood",
}

var seedNameSuffixes = map[string][]string{
	"Agriculture":           {"Farms", "Orchards", "Ranch Supply"},
	"Construction":          {"Builders", "Concrete", "Roofing"},
	"Manufacturing":         {"Fabrication", "Machine Works", "Industries"},
	"Retail":                {"Outfitters", "Hardware", "Mercantile"},
	"Professional_Services": {"Consulting", "Accounting", "Law Group"},
	"Health_Care":           {"Family Clinic", "Dental", "Physical Therapy"},
	"Food_Services":         {"Bakery", "Grill", "Catering"},
	"Technology":            {"Software", "Data Labs", "Networks"},
	"Transportation":        {"Freight", "Logistics", "Auto Transport"},
	"Real_Estate":           {"Realty", "Property Management", "Land Co."},
	"Arts_Entertainment":    {"Theatre", "Gallery", "Studios"},
	"Education":             {"Learning Center", "Academy", "Tutoring"},
}

var (
	seedCount  int
	seedRandom int64
	seedForce  bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the local directory with sample businesses",
	Long: `Writes the record type metadata, the business category and county picklists,
and a set of generated Utah business registrations to the local backend.

Seeding is deterministic for a given --random-seed.`,
	Example: `  bizdirctl seed
  bizdirctl seed --count 200 --random-seed 7
  bizdirctl seed --backend sqlite --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, ok := dir.(directory.Store)
		if !ok {
			return fmt.Errorf("seed requires a local backend (markdown or sqlite), not %q", appConfig.Backend)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		existing, err := store.FilterRecords(ctx, directory.Query{})
		if err != nil {
			return err
		}
		if len(existing) > 0 && !seedForce {
			if !isTerminal() {
				return fmt.Errorf("directory already has %d businesses; use --force to add more", len(existing))
			}
			ok, err := ui.Confirm(fmt.Sprintf("Directory already has %d businesses. Add %d more?", len(existing), seedCount), false, ui.ResolveTheme(appConfig.Theme))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Seeding cancelled.")
				return nil
			}
		}

		return runSeed(cmd.OutOrStdout(), store, seedCount, seedRandom)
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 60, "number of businesses to generate")
	seedCmd.Flags().Int64Var(&seedRandom, "random-seed", 1, "random seed for generated data")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "add businesses even if the directory is not empty")
	rootCmd.AddCommand(seedCmd)
}

// seedObjectInfo describes the record object with a master and a business
// registration record type.
func seedObjectInfo() directory.ObjectInfo {
	return directory.ObjectInfo{
		APIName:             record.ObjectAPIName,
		DefaultRecordTypeID: seedMasterRecordTypeID,
		RecordTypeInfos: map[string]directory.RecordTypeInfo{
			seedMasterRecordTypeID: {
				RecordTypeID: seedMasterRecordTypeID,
				Name:         "Master",
				Available:    true,
				Master:       true,
			},
			seedBusinessRecordTypeID: {
				RecordTypeID: seedBusinessRecordTypeID,
				Name:         "Business Registration",
				Available:    true,
			},
		},
	}
}

// seedPicklists returns the picklists of both record types. The master
// record type only carries the first few values of each list.
func seedPicklists() []directory.Picklist {
	return []directory.Picklist{
		{Field: facet.FieldBusinessCategory, RecordTypeID: seedBusinessRecordTypeID, Values: seedCategories},
		{Field: facet.FieldCounty, RecordTypeID: seedBusinessRecordTypeID, Values: seedCounties},
		{Field: facet.FieldBusinessCategory, RecordTypeID: seedMasterRecordTypeID, Values: seedCategories[:4]},
		{Field: facet.FieldCounty, RecordTypeID: seedMasterRecordTypeID, Values: seedCounties[:4]},
	}
}

func runSeed(w io.Writer, store directory.Store, count int, seed int64) error {
	if count < 0 {
		return errors.New("--count must not be negative")
	}

	if err := store.PutObjectInfo(seedObjectInfo()); err != nil {
		return err
	}
	for _, p := range seedPicklists() {
		if err := store.PutPicklist(p); err != nil {
			return err
		}
	}

	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		r, err := seedRecord(rng, base.Add(time.Duration(i)*37*time.Hour))
		if err != nil {
			return err
		}
		if err := store.CreateRecord(r); err != nil {
			return fmt.Errorf("creating %s: %w", r.Name, err)
		}
	}

	fmt.Fprintf(w, "Seeded %d record types, %d categories, %d counties and %d businesses.\n",
		2, len(seedCategories), len(seedCounties), count)
	return nil
}

func seedRecord(rng *rand.Rand, created time.Time) (record.Record, error) {
	id, err := record.NewID()
	if err != nil {
		return record.Record{}, fmt.Errorf("generating ID: %w", err)
	}

	primary := seedCategories[rng.Intn(len(seedCategories))].Value
	categories := []string{primary}
	if rng.Float64() < 0.3 {
		extra := seedCategories[rng.Intn(len(seedCategories))].Value
		if extra != primary {
			categories = append(categories, extra)
		}
	}

	// Weight the Wasatch Front so the larger counties have more businesses.
	var county string
	if rng.Float64() < 0.6 {
		front := []string{"Salt_Lake", "Utah", "Davis", "Weber"}
		county = front[rng.Intn(len(front))]
	} else {
		county = seedCounties[rng.Intn(len(seedCounties))].Value
	}
	var city string
	if cities := seedCities[county]; len(cities) > 0 {
		city = cities[rng.Intn(len(cities))]
	}

	prefix := seedNamePrefixes[rng.Intn(len(seedNamePrefixes))]
	suffixes := seedNameSuffixes[primary]
	suffix := suffixes[rng.Intn(len(suffixes))]
	name := prefix + " " + suffix
	slug := strings.ToLower(strings.NewReplacer(" ", "", ".", "", "&", "").Replace(name))

	categoryLabel := facet.LabelFor(facet.FromPicklist(directory.Picklist{Values: seedCategories}), primary)
	countyLabel := facet.LabelFor(facet.FromPicklist(directory.Picklist{Values: seedCounties}), county)

	return record.Record{
		Summary: record.Summary{
			ID:         id,
			Name:       name,
			Categories: categories,
			County:     county,
			City:       city,
			Phone:      fmt.Sprintf("(801) %03d-%04d", 200+rng.Intn(800), rng.Intn(10000)),
			Email:      "info@" + slug + ".example",
			Website:    "https://" + slug + ".example",
		},
		Description: fmt.Sprintf("%s is a %s business registered in %s County.", name, strings.ToLower(categoryLabel), countyLabel),
		Address:     fmt.Sprintf("%d N %d E", 10+rng.Intn(990), 100*(1+rng.Intn(9))),
		Contact:     seedContacts[rng.Intn(len(seedContacts))],
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Duration(rng.Intn(720)) * time.Hour),
	}, nil
}

var seedContacts = []string{
	"Avery Jensen", "Jordan Christensen", "Taylor Larsen", "Morgan Nielsen",
	"Casey Petersen", "Riley Hansen", "Quinn Olsen", "Skyler Young",
}
