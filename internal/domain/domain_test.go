package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in   string
		want Platform
	}{
		{"aragon", PlatformAragon},
		{"Aragon", PlatformAragon},
		{"a", PlatformAragon},
		{"platform-a", PlatformAragon},
		{"DAOhaus", PlatformDAOhaus},
		{"b", PlatformDAOhaus},
		{" daostack ", PlatformDAOstack},
		{"platform-c", PlatformDAOstack},
	}
	for _, tt := range tests {
		got, err := ParsePlatform(tt.in)
		if err != nil {
			t.Errorf("ParsePlatform(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePlatform(%q) = %s, want %s", tt.in, got, tt.want)
		}
		if !got.IsValid() {
			t.Errorf("%s.IsValid() = false", got)
		}
	}
}

func TestParsePlatform_Unsupported(t *testing.T) {
	_, err := ParsePlatform("compound")
	var unsupported *UnsupportedPlatformError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want UnsupportedPlatformError", err)
	}
	if unsupported.Name != "compound" {
		t.Errorf("Name = %q", unsupported.Name)
	}
	if err.Error() != "platform compound not supported" {
		t.Errorf("Error() = %q", err.Error())
	}
	if Platform("compound").IsValid() {
		t.Error("IsValid() = true for compound")
	}
}

func TestPlatformAnalysisError_Unwrap(t *testing.T) {
	cause := &MissingInputError{Platform: PlatformAragon, Category: "organizations"}
	err := error(&PlatformAnalysisError{Platform: PlatformAragon, Err: cause})

	var missing *MissingInputError
	if !errors.As(err, &missing) {
		t.Fatal("errors.As did not reach MissingInputError")
	}
	if !strings.HasPrefix(err.Error(), "error analyzing aragon data: required input not found: organizations") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestMalformedDataError_Message(t *testing.T) {
	cause := errors.New("bad")
	header := &MalformedDataError{Category: "votes", Column: "createdAt", Err: cause}
	if got := header.Error(); got != `malformed votes: column "createdAt": bad` {
		t.Errorf("header Error() = %q", got)
	}
	row := &MalformedDataError{Category: "votes", Row: 3, Column: "createdAt", Value: "x", Err: cause}
	if got := row.Error(); got != `malformed votes row 3: column "createdAt" value "x": bad` {
		t.Errorf("row Error() = %q", got)
	}
	if !errors.Is(row, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestTable(t *testing.T) {
	tbl := &Table{
		Category: "daos",
		Columns:  []string{"dao", "name"},
		Rows:     [][]string{{"0x1", "One"}, {"0x2"}},
	}
	if !tbl.HasColumn("name") || tbl.HasColumn("createdAt") {
		t.Error("HasColumn mismatch")
	}
	if got := tbl.Value(0, "name"); got != "One" {
		t.Errorf("Value(0, name) = %q", got)
	}
	if got := tbl.Value(1, "name"); got != "" {
		t.Errorf("Value on short row = %q", got)
	}
	if got := tbl.Value(5, "dao"); got != "" {
		t.Errorf("Value out of range = %q", got)
	}

	c := tbl.Clone()
	c.Rows[0][1] = "changed"
	if tbl.Rows[0][1] != "One" {
		t.Error("Clone shares row storage")
	}
}

func TestOrganizationSignal_AddEvent(t *testing.T) {
	var s OrganizationSignal
	early := time.Unix(1000, 0)
	late := time.Unix(2000, 0)

	s.AddEvent(late, CounterVotes)
	s.AddEvent(early, CounterVotes)
	s.Incr(CounterMembers, 3)

	if s.Count(CounterVotes) != 2 {
		t.Errorf("votes = %d", s.Count(CounterVotes))
	}
	if s.Count(CounterMembers) != 3 {
		t.Errorf("members = %d", s.Count(CounterMembers))
	}
	if len(s.Events) != 2 {
		t.Errorf("events = %d, want 2", len(s.Events))
	}
	if s.LastActivity == nil || !s.LastActivity.Equal(late) {
		t.Errorf("LastActivity = %v, want %v", s.LastActivity, late)
	}
}

func TestClassificationResult_ActivityRate(t *testing.T) {
	r := ClassificationResult{TotalOrganizations: 4, ActiveOrganizations: 1}
	if got := r.ActivityRate(); got != 25 {
		t.Errorf("ActivityRate() = %v, want 25", got)
	}
	empty := ClassificationResult{}
	if got := empty.ActivityRate(); got != 0 {
		t.Errorf("ActivityRate() on empty = %v", got)
	}
}
