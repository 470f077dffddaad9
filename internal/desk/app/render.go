package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/healthdesk/internal/desk/dashboard"
	"github.com/aussiebroadwan/healthdesk/internal/desk/search"
	"github.com/aussiebroadwan/healthdesk/internal/desk/settings"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
)

const barWidth = 30

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func renderClients(w io.Writer, rows []search.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No clients found.")
		return
	}

	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, orDash(r.Email), orDash(r.Phone))
	}
	_ = tw.Flush()
}

func renderProfile(w io.Writer, c healthsdk.Client, loc *time.Location) {
	tw := table(w)
	fmt.Fprintf(tw, "ID\t%s\n", c.ID)
	fmt.Fprintf(tw, "Name\t%s\n", c.FullName())
	fmt.Fprintf(tw, "Email\t%s\n", orDash(c.Email))
	fmt.Fprintf(tw, "Phone\t%s\n", orDash(c.Phone))
	fmt.Fprintf(tw, "Date of birth\t%s\n", orDash(c.DateOfBirth))
	fmt.Fprintf(tw, "Gender\t%s\n", orDash(c.Gender))
	fmt.Fprintf(tw, "Address\t%s\n", orDash(c.Address))
	fmt.Fprintf(tw, "Emergency contact\t%s\n", orDash(c.EmergencyContact))
	if !c.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Registered\t%s\n", c.CreatedAt.In(loc).Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	if len(c.Programs) == 0 {
		fmt.Fprintln(w, "Not enrolled in any programs.")
		return
	}

	fmt.Fprintln(w, "Programs:")
	tw = table(w)
	for _, p := range c.Programs {
		fmt.Fprintf(tw, "  %s\t%s\n", p.ID, p.Name)
	}
	_ = tw.Flush()
}

func renderPrograms(w io.Writer, rows []settings.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No programs yet.")
		return
	}

	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tENROLLED\tDESCRIPTION")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Program.ID, r.Program.Name, r.Enrolled, orDash(r.Program.Description))
	}
	_ = tw.Flush()
}

func renderProgramChoices(w io.Writer, programs []healthsdk.Program) {
	tw := table(w)
	for i, p := range programs {
		fmt.Fprintf(tw, "%d)\t%s\t%s\n", i+1, p.Name, p.ID)
	}
	_ = tw.Flush()
}

func renderDashboard(w io.Writer, s dashboard.Summary) {
	if s.NoData {
		fmt.Fprintln(w, "No data yet. Register a client or create a program to get started.")
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Clients: %d    Programs: %d\n\n", s.TotalClients, s.TotalPrograms)

	fmt.Fprintln(w, "Age distribution")
	renderBars(w, s.Ages)

	fmt.Fprintln(w, "\nGender distribution")
	renderBars(w, s.Genders.Buckets())

	fmt.Fprintln(w, "\nRegistrations")
	reg := make([]dashboard.Bucket, 0, len(s.Registrations))
	for _, p := range s.Registrations {
		reg = append(reg, dashboard.Bucket{Label: p.Date, Count: p.Count})
	}
	renderBars(w, reg)

	fmt.Fprintln(w, "\nProgram enrollment")
	progs := make([]dashboard.Bucket, 0, len(s.Programs))
	for _, p := range s.Programs {
		progs = append(progs, dashboard.Bucket{Label: p.Name, Count: p.Count})
	}
	renderBars(w, progs)
}

// renderBars draws a horizontal bar chart scaled so the largest count
// fills barWidth.
func renderBars(w io.Writer, buckets []dashboard.Bucket) {
	if len(buckets) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}

	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}

	tw := table(w)
	for _, b := range buckets {
		n := 0
		if peak > 0 {
			n = b.Count * barWidth / peak
		}
		if b.Count > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(tw, "  %s\t%s %d\n", b.Label, strings.Repeat("#", n), b.Count)
	}
	_ = tw.Flush()
}
