package classify

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"dao-activity-lab/internal/domain"
)

var testNow = time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * day)
}

func aragonThresholds(t *testing.T) Thresholds {
	t.Helper()
	th, ok := DefaultThresholds(domain.PlatformAragon)
	if !ok {
		t.Fatal("expected aragon thresholds")
	}
	return th
}

// aragonSignal builds a signal with txCount transactions, the last one
// lastTxDaysAgo days before testNow.
func aragonSignal(id string, createdDaysAgo, txCount, lastTxDaysAgo int) domain.OrganizationSignal {
	s := domain.OrganizationSignal{ID: id, Name: id, CreatedAt: daysAgo(createdDaysAgo)}
	for i := 0; i < txCount; i++ {
		s.AddEvent(daysAgo(lastTxDaysAgo+i), domain.CounterTransactions)
	}
	return s
}

func TestDaysBetween_Truncates(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"same instant", testNow, 0},
		{"23h59m ago", testNow.Add(-23*time.Hour - 59*time.Minute), 0},
		{"exactly one day", testNow.Add(-day), 1},
		{"6 days 23 hours", testNow.Add(-6*day - 23*time.Hour), 6},
		{"30 days", daysAgo(30), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(testNow, tt.t); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCategorize_Aragon(t *testing.T) {
	th := aragonThresholds(t)

	tests := []struct {
		name   string
		signal domain.OrganizationSignal
		want   domain.Category
	}{
		{"young with two transactions", aragonSignal("a", 3, 2, 1), domain.CategoryPotentialTest},
		{"young with no transactions", aragonSignal("a", 0, 0, 0), domain.CategoryPotentialTest},
		{"created exactly 7 days ago with 2 transactions", aragonSignal("a", 7, 2, 1), domain.CategoryModeratelyActive},
		{"young but busy", aragonSignal("a", 3, 6, 0), domain.CategoryHighlyActive},
		{"old with no transactions", aragonSignal("a", 400, 0, 0), domain.CategoryNoActivity},
		{"recency 30 and 5 transactions", aragonSignal("a", 400, 5, 30), domain.CategoryHighlyActive},
		{"recency 31 and 5 transactions", aragonSignal("a", 400, 5, 31), domain.CategoryModeratelyActive},
		{"recent but 4 transactions", aragonSignal("a", 400, 4, 2), domain.CategoryModeratelyActive},
		{"recency 90", aragonSignal("a", 400, 1, 90), domain.CategoryModeratelyActive},
		{"recency 91", aragonSignal("a", 400, 20, 91), domain.CategoryMinimallyActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(&tt.signal, testNow, th); got != tt.want {
				t.Errorf("Categorize = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCategorize_UnknownCreationIsNeverTest(t *testing.T) {
	th, _ := DefaultThresholds(domain.PlatformDAOstack)
	s := domain.OrganizationSignal{ID: "dao"}

	if got := Categorize(&s, testNow, th); got != domain.CategoryNoActivity {
		t.Errorf("expected no_activity for unknown creation, got %s", got)
	}
}

func TestCategorize_DAOhausHighVolumeIsOr(t *testing.T) {
	th, _ := DefaultThresholds(domain.PlatformDAOhaus)

	votesOnly := domain.OrganizationSignal{ID: "m", CreatedAt: daysAgo(100)}
	for i := 0; i < 10; i++ {
		votesOnly.AddEvent(daysAgo(5), domain.CounterVotes)
	}
	if got := Categorize(&votesOnly, testNow, th); got != domain.CategoryHighlyActive {
		t.Errorf("10 votes: expected highly_active, got %s", got)
	}

	proposalsOnly := domain.OrganizationSignal{ID: "m", CreatedAt: daysAgo(100)}
	for i := 0; i < 5; i++ {
		proposalsOnly.AddEvent(daysAgo(5), domain.CounterProposals)
	}
	if got := Categorize(&proposalsOnly, testNow, th); got != domain.CategoryHighlyActive {
		t.Errorf("5 proposals: expected highly_active, got %s", got)
	}

	// Members count toward the potential-test filter.
	members := domain.OrganizationSignal{ID: "m", CreatedAt: daysAgo(2)}
	members.AddEvent(daysAgo(1), domain.CounterProposals)
	members.Incr(domain.CounterMembers, 3)
	if got := Categorize(&members, testNow, th); got != domain.CategoryModeratelyActive {
		t.Errorf("3 members: expected moderately_active, got %s", got)
	}
}

func TestCategorize_TestPrecedence(t *testing.T) {
	th := aragonThresholds(t)

	// However recent the sparse activity, a young low-volume org is a test.
	for recency := 0; recency < 7; recency++ {
		s := aragonSignal("a", 6, 2, recency)
		if got := Categorize(&s, testNow, th); got != domain.CategoryPotentialTest {
			t.Errorf("recency %d: expected potential_test, got %s", recency, got)
		}
	}
}

func TestClassify_EndToEnd(t *testing.T) {
	th := aragonThresholds(t)

	res := Classify([]domain.OrganizationSignal{aragonSignal("0xabc", 400, 10, 10)}, testNow, th)

	if res.TotalOrganizations != 1 || res.ActiveOrganizations != 1 || res.InactiveOrganizations != 0 {
		t.Errorf("unexpected totals: %+v", res)
	}
	if res.HighlyActive != 1 {
		t.Errorf("expected highly_active 1, got %d", res.HighlyActive)
	}
	if len(res.Detailed.HighlyActiveDAOs) != 1 {
		t.Fatalf("expected 1 highly active listing, got %d", len(res.Detailed.HighlyActiveDAOs))
	}

	sum := res.Detailed.HighlyActiveDAOs[0]
	if sum.Address != "0xabc" {
		t.Errorf("Address = %s, want 0xabc", sum.Address)
	}
	if sum.Counts[domain.CounterTransactions] != 10 {
		t.Errorf("transactions = %d, want 10", sum.Counts[domain.CounterTransactions])
	}
	if sum.AgeDays != 400 || sum.DaysSinceActivity != 10 {
		t.Errorf("AgeDays/DaysSinceActivity = %d/%d, want 400/10", sum.AgeDays, sum.DaysSinceActivity)
	}
	if !sum.LastActivity.Equal(daysAgo(10)) {
		t.Errorf("LastActivity = %v, want %v", sum.LastActivity, daysAgo(10))
	}
}

func TestClassify_NoTransactionsIsInactive(t *testing.T) {
	res := Classify([]domain.OrganizationSignal{aragonSignal("0xabc", 400, 0, 0)}, testNow, aragonThresholds(t))

	if res.InactiveOrganizations != 1 || res.ActiveOrganizations != 0 {
		t.Errorf("expected inactive 1 active 0, got inactive %d active %d",
			res.InactiveOrganizations, res.ActiveOrganizations)
	}
	if res.NoActivity != 1 {
		t.Errorf("expected no_activity 1, got %d", res.NoActivity)
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	res := Classify(nil, testNow, aragonThresholds(t))

	if res.TotalOrganizations != 0 || res.ActiveOrganizations != 0 || res.InactiveOrganizations != 0 {
		t.Errorf("expected zero totals, got %+v", res)
	}
	if res.Detailed.HighlyActiveDAOs == nil || res.Detailed.ModeratelyActiveDAOs == nil {
		t.Error("expected empty, non-nil listings")
	}
}

func TestClassify_ListingsKeepSourceOrder(t *testing.T) {
	signals := []domain.OrganizationSignal{
		aragonSignal("c", 400, 1, 50),
		aragonSignal("a", 400, 9, 1),
		aragonSignal("b", 400, 1, 20),
		aragonSignal("d", 400, 9, 3),
	}

	res := Classify(signals, testNow, aragonThresholds(t))

	gotHigh := addresses(res.Detailed.HighlyActiveDAOs)
	if !reflect.DeepEqual(gotHigh, []string{"a", "d"}) {
		t.Errorf("highly active order = %v, want [a d]", gotHigh)
	}
	gotModerate := addresses(res.Detailed.ModeratelyActiveDAOs)
	if !reflect.DeepEqual(gotModerate, []string{"c", "b"}) {
		t.Errorf("moderately active order = %v, want [c b]", gotModerate)
	}
}

func TestClassify_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, p := range domain.Platforms {
		th, _ := DefaultThresholds(p)
		for round := 0; round < 50; round++ {
			signals := randomSignals(rng, rng.Intn(40))
			res := Classify(signals, testNow, th)

			sum := res.HighlyActive + res.ModeratelyActive + res.MinimallyActive + res.PotentialTest + res.NoActivity
			if sum != res.TotalOrganizations {
				t.Fatalf("%s: categories sum %d != total %d", p, sum, res.TotalOrganizations)
			}
			if res.ActiveOrganizations+res.InactiveOrganizations != res.TotalOrganizations {
				t.Fatalf("%s: active %d + inactive %d != total %d",
					p, res.ActiveOrganizations, res.InactiveOrganizations, res.TotalOrganizations)
			}
			if res.TotalOrganizations != len(signals) {
				t.Fatalf("%s: total %d != %d signals", p, res.TotalOrganizations, len(signals))
			}
		}
	}
}

func TestClassify_MonotonicRecency(t *testing.T) {
	rank := map[domain.Category]int{
		domain.CategoryMinimallyActive:  0,
		domain.CategoryModeratelyActive: 1,
		domain.CategoryHighlyActive:     2,
	}
	th := aragonThresholds(t)

	for txCount := 1; txCount <= 8; txCount++ {
		for older := 0; older <= 120; older += 3 {
			for newer := 0; newer <= older; newer += 3 {
				a := aragonSignal("old", 500, txCount, older)
				b := aragonSignal("new", 500, txCount, newer)
				// Same event count, only the last instant differs.
				b.Events = a.Events
				last := daysAgo(newer)
				b.LastActivity = &last

				ca := Categorize(&a, testNow, th)
				cb := Categorize(&b, testNow, th)
				if rank[cb] < rank[ca] {
					t.Fatalf("tx=%d: recency %d -> %s ranks below recency %d -> %s", txCount, newer, cb, older, ca)
				}
			}
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	signals := randomSignals(rng, 100)
	th, _ := DefaultThresholds(domain.PlatformDAOstack)

	first, err := json.Marshal(Classify(signals, testNow, th))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(Classify(signals, testNow, th))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("expected byte-identical results")
	}
}

func TestClassifyParallel_MatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	signals := randomSignals(rng, 257)
	th, _ := DefaultThresholds(domain.PlatformDAOhaus)

	want := Classify(signals, testNow, th)
	for _, workers := range []int{0, 1, 2, 3, 8} {
		got := ClassifyParallel(signals, testNow, th, workers)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("workers=%d: parallel result differs from sequential", workers)
		}
	}
}

func addresses(summaries []domain.OrganizationSummary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.Address
	}
	return out
}

// randomSignals generates signals across every counter, including
// organizations with unknown creation and no events.
func randomSignals(rng *rand.Rand, n int) []domain.OrganizationSignal {
	counters := []domain.Counter{
		domain.CounterTransactions, domain.CounterProposals, domain.CounterVotes,
		domain.CounterStakes, domain.CounterRageQuits,
	}

	signals := make([]domain.OrganizationSignal, n)
	for i := range signals {
		s := domain.OrganizationSignal{ID: string(rune('a' + i%26)), Name: domain.UnnamedOrganization}
		if rng.Intn(5) > 0 {
			s.CreatedAt = daysAgo(rng.Intn(400))
		}
		for e := rng.Intn(15); e > 0; e-- {
			s.AddEvent(daysAgo(rng.Intn(200)), counters[rng.Intn(len(counters))])
		}
		if rng.Intn(3) == 0 {
			s.Incr(domain.CounterMembers, rng.Intn(6))
		}
		signals[i] = s
	}
	return signals
}
