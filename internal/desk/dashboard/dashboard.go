// Package dashboard derives the summary charts from the client and program
// collections. Every function is pure: the same inputs and clock give the
// same output, and callers recompute from scratch whenever either
// collection changes.
package dashboard

import (
	"sort"
	"time"

	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
)

// Bucket is one bar of a chart.
type Bucket struct {
	Label string
	Count int
}

// AgeBucket labels, in chart order.
const (
	AgeUpTo10  = "0-10"
	Age10To30  = "10-30"
	Age30To50  = "30-50"
	AgeAbove50 = "Above 50"
)

// AgeAt returns the whole calendar years from dob to now. A missing or
// unparseable date, or one after now, gives 0.
func AgeAt(dob string, now time.Time) int {
	if dob == "" {
		return 0
	}
	birth, err := time.Parse(healthsdk.DateLayout, dob)
	if err != nil {
		return 0
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return max(age, 0)
}

// AgeBuckets counts clients by age on now.
//
// Age 10 is counted in both "0-10" and "10-30". That overlap is long-standing
// chart behaviour and is kept until the bucket edges are agreed; it means
// the bucket totals can exceed the client count.
func AgeBuckets(clients []healthsdk.Client, now time.Time) []Bucket {
	out := []Bucket{{Label: AgeUpTo10}, {Label: Age10To30}, {Label: Age30To50}, {Label: AgeAbove50}}

	for _, c := range clients {
		age := AgeAt(c.DateOfBirth, now)
		if age <= 10 {
			out[0].Count++
		}
		if age >= 10 && age < 30 {
			out[1].Count++
		}
		if age >= 30 && age <= 50 {
			out[2].Count++
		}
		if age > 50 {
			out[3].Count++
		}
	}
	return out
}

// GenderCounts is the gender distribution. Unrecognized counts values
// outside Male/Female/Other that are not blank; they are not charted.
type GenderCounts struct {
	Male         int
	Female       int
	Other        int
	Unrecognized int
}

// Buckets is the charted part of g.
func (g GenderCounts) Buckets() []Bucket {
	return []Bucket{
		{Label: healthsdk.GenderMale, Count: g.Male},
		{Label: healthsdk.GenderFemale, Count: g.Female},
		{Label: healthsdk.GenderOther, Count: g.Other},
	}
}

func Genders(clients []healthsdk.Client) GenderCounts {
	var g GenderCounts
	for _, c := range clients {
		switch c.Gender {
		case healthsdk.GenderMale:
			g.Male++
		case healthsdk.GenderFemale:
			g.Female++
		case healthsdk.GenderOther:
			g.Other++
		case "":
		default:
			g.Unrecognized++
		}
	}
	return g
}

// Point is the number of clients registered on one calendar day.
type Point struct {
	Date  string
	Count int
}

// Registrations groups clients by the local calendar day of created_at in
// loc, oldest first. Clients without created_at are skipped.
func Registrations(clients []healthsdk.Client, loc *time.Location) []Point {
	if loc == nil {
		loc = time.Local
	}

	counts := make(map[string]int)
	for _, c := range clients {
		if c.CreatedAt.IsZero() {
			continue
		}
		counts[c.CreatedAt.In(loc).Format(healthsdk.DateLayout)]++
	}

	out := make([]Point, 0, len(counts))
	for day, n := range counts {
		out = append(out, Point{Date: day, Count: n})
	}
	// YYYY-MM-DD sorts chronologically as a string.
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ProgramCount is how many clients are enrolled in one program.
type ProgramCount struct {
	ProgramID string
	Name      string
	Count     int
}

// ProgramCounts counts, for each program in order, the clients whose
// program set contains it.
func ProgramCounts(clients []healthsdk.Client, programs []healthsdk.Program) []ProgramCount {
	enrolled := make(map[string]int, len(programs))
	for _, c := range clients {
		seen := make(map[string]bool, len(c.Programs))
		for _, p := range c.Programs {
			if !seen[p.ID] {
				seen[p.ID] = true
				enrolled[p.ID]++
			}
		}
	}

	out := make([]ProgramCount, 0, len(programs))
	for _, p := range programs {
		out = append(out, ProgramCount{ProgramID: p.ID, Name: p.Name, Count: enrolled[p.ID]})
	}
	return out
}

// Summary is everything the dashboard shows.
type Summary struct {
	// NoData is set when there are no clients and no programs; the charts
	// are still populated with zeroes.
	NoData bool

	TotalClients  int
	TotalPrograms int

	Ages          []Bucket
	Genders       GenderCounts
	Registrations []Point
	Programs      []ProgramCount
}

// Derive recomputes the whole summary.
func Derive(clients []healthsdk.Client, programs []healthsdk.Program, now time.Time, loc *time.Location) Summary {
	return Summary{
		NoData:        len(clients) == 0 && len(programs) == 0,
		TotalClients:  len(clients),
		TotalPrograms: len(programs),
		Ages:          AgeBuckets(clients, now),
		Genders:       Genders(clients),
		Registrations: Registrations(clients, loc),
		Programs:      ProgramCounts(clients, programs),
	}
}
