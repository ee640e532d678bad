package catalog

import (
	"io"
	"os"

	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/errs"
	"github.com/deanb221/caravan/internal/usecase/commands"

	"gopkg.in/yaml.v3"
)

type file struct {
	Caravans []entry `yaml:"caravans"`
}

type entry struct {
	Slug             string   `yaml:"slug"`
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	ShortDescription string   `yaml:"shortDescription"`
	Sleeps           int      `yaml:"sleeps"`
	Berths           int      `yaml:"berths"`
	Images           []string `yaml:"images"`
	Features         []string `yaml:"features"`
	PetFriendly      bool     `yaml:"petFriendly"`
	// Prices are whole pounds, as on the public price list.
	Pricing struct {
		Weekend int64 `yaml:"weekend"`
		Weekly  int64 `yaml:"weekly"`
	} `yaml:"pricing"`
	BookedDates []string `yaml:"bookedDates"`
}

func LoadFile(path string) ([]commands.CatalogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrapf(err, "open catalog %s", path)
	}
	defer f.Close()

	entries, err := Decode(f)
	if err != nil {
		return nil, errs.Wrapf(err, "catalog %s", path)
	}
	return entries, nil
}

func Decode(r io.Reader) ([]commands.CatalogEntry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc file
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errs.Wrap(err, "parse")
	}

	out := make([]commands.CatalogEntry, 0, len(doc.Caravans))
	for i, e := range doc.Caravans {
		ce, err := e.toEntry()
		if err != nil {
			return nil, errs.Wrapf(err, "caravans[%d] (%s)", i, e.Slug)
		}
		out = append(out, ce)
	}
	return out, nil
}

func (e entry) toEntry() (commands.CatalogEntry, error) {
	weekend, err := caravan.NewMoneyFromPounds(e.Pricing.Weekend)
	if err != nil {
		return commands.CatalogEntry{}, errs.Wrap(err, "weekend price")
	}
	weekly, err := caravan.NewMoneyFromPounds(e.Pricing.Weekly)
	if err != nil {
		return commands.CatalogEntry{}, errs.Wrap(err, "weekly price")
	}

	booked := make([]civil.Date, 0, len(e.BookedDates))
	for _, s := range e.BookedDates {
		d, err := civil.ParseDate(s)
		if err != nil {
			return commands.CatalogEntry{}, errs.Wrap(err, "booked date")
		}
		booked = append(booked, d)
	}

	return commands.CatalogEntry{
		Slug: e.Slug,
		Name: e.Name,
		Details: caravan.Details{
			Description:      e.Description,
			ShortDescription: e.ShortDescription,
			Sleeps:           e.Sleeps,
			Berths:           e.Berths,
			Images:           e.Images,
			Features:         e.Features,
			PetFriendly:      e.PetFriendly,
		},
		WeekendTotalPence: weekend.Pence(),
		WeeklyTotalPence:  weekly.Pence(),
		BlockedDates:      booked,
	}, nil
}
