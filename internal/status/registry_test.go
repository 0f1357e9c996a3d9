package status

import "testing"

func TestNormalizeCanonicalLabelsIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	for _, code := range reg.Codes() {
		if got := reg.Normalize(reg.Label(code)); got != code {
			t.Fatalf("normalize(%q) = %q, expected %q", reg.Label(code), got, code)
		}
	}
}

func TestNormalizeEmptyDefaultsToScheduled(t *testing.T) {
	reg := NewRegistry()
	if got := reg.Normalize(""); got != Scheduled {
		t.Fatalf("expected scheduled for empty input, got %q", got)
	}
	if got := reg.Normalize("   "); got != Scheduled {
		t.Fatalf("expected scheduled for blank input, got %q", got)
	}
	if got := reg.Normalize("bilinmeyen durum"); got != Scheduled {
		t.Fatalf("expected scheduled for unrecognized input, got %q", got)
	}
}

func TestNormalizeLegacyImportText(t *testing.T) {
	cases := []struct {
		raw      string
		expected Code
	}{
		{"DEVAM EDİYOR", InProgress},
		{"devam ediyor", InProgress},
		{"FT1234 kapsamında BİTTİ", Completed},
		{"İPTAL", Cancelled},
		{"iptal edildi", Cancelled},
		{"ARIZA TESPİT yapıldı", InspectionOnly},
		{"Onay bekleniyor", AwaitingApproval},
		{"müsteri ONAYI bekleniyor", AwaitingApproval},
		{"rapor yazılacak", AwaitingReport},
		{"PARÇA bekleniyor", AwaitingParts},
		{"parca siparis edildi", AwaitingParts},
		{"randevu verildi 15.01", Scheduled},
		{"Tamamlandı", Completed},
		{"BİTTİ", Completed},
	}

	reg := NewRegistry()
	for _, tc := range cases {
		if got := reg.Normalize(tc.raw); got != tc.expected {
			t.Fatalf("normalize(%q) = %q, expected %q", tc.raw, got, tc.expected)
		}
	}
}

func TestNormalizeChainOrderFinishedFTWins(t *testing.T) {
	reg := NewRegistry()
	// A legacy cell can carry several markers; the finished FT work order
	// must win over the cancellation marker further down the chain.
	if got := reg.Normalize("FT890 BİTTİ, eski kayıt iptal"); got != Completed {
		t.Fatalf("expected completed for finished FT text, got %q", got)
	}
	// Without the FT qualifier the cancellation marker is reached first.
	if got := reg.Normalize("eski kayıt iptal, bitti"); got != Cancelled {
		t.Fatalf("expected cancelled without FT qualifier, got %q", got)
	}
}

func TestPriorityOrdering(t *testing.T) {
	reg := NewRegistry()
	expected := map[Code]int{
		InProgress:       1,
		Scheduled:        2,
		AwaitingParts:    3,
		AwaitingApproval: 4,
		AwaitingReport:   5,
		Completed:        TerminalPriority,
		InspectionOnly:   TerminalPriority,
		Cancelled:        TerminalPriority,
	}
	for code, want := range expected {
		if got := reg.Priority(code); got != want {
			t.Fatalf("priority(%q) = %d, expected %d", code, got, want)
		}
	}
}

func TestClassificationPredicates(t *testing.T) {
	reg := NewRegistry()

	active := []Code{Scheduled, InProgress, AwaitingApproval, AwaitingReport, AwaitingParts}
	for _, code := range active {
		if !reg.IsActive(code) {
			t.Fatalf("expected %q to be active", code)
		}
		if reg.IsArchived(code) {
			t.Fatalf("active code %q must not be archived", code)
		}
	}

	for _, code := range []Code{Completed, InspectionOnly} {
		if !reg.IsCompletedForScoring(code) {
			t.Fatalf("expected %q to count for scoring", code)
		}
		if !reg.IsArchived(code) {
			t.Fatalf("expected %q to be archived", code)
		}
	}

	// Cancelled work is archived but must never feed performance metrics.
	if reg.IsCompletedForScoring(Cancelled) {
		t.Fatal("cancelled must not count for scoring")
	}
	if !reg.IsArchived(Cancelled) {
		t.Fatal("cancelled must be archived")
	}
	if reg.IsActive(Cancelled) {
		t.Fatal("cancelled must not be active")
	}
}

func TestOperatorAliasResolvesToBehavioralCode(t *testing.T) {
	reg := NewRegistry().WithAlias("Vinçte Bekliyor", AwaitingParts)

	if got := reg.Normalize("VİNÇTE BEKLİYOR"); got != AwaitingParts {
		t.Fatalf("expected alias to resolve to awaiting_parts, got %q", got)
	}
	// The alias carries the behavioral code's classification with it.
	if !reg.IsActive(reg.Normalize("Vinçte Bekliyor")) {
		t.Fatal("aliased status must classify as active")
	}
}

func TestAliasWithUnknownCodeIsIgnored(t *testing.T) {
	reg := NewRegistry().WithAlias("Garip Durum", Code("ninth_state"))
	if got := reg.Normalize("Garip Durum"); got != Scheduled {
		t.Fatalf("alias to unknown code must fall through to default, got %q", got)
	}
}

func TestCodesOrderedByPriority(t *testing.T) {
	reg := NewRegistry()
	codes := reg.Codes()
	if len(codes) != 8 {
		t.Fatalf("expected 8 canonical codes, got %d", len(codes))
	}
	if codes[0] != InProgress || codes[1] != Scheduled {
		t.Fatalf("expected in_progress then scheduled first, got %v", codes[:2])
	}
	for i := 1; i < len(codes); i++ {
		if reg.Priority(codes[i-1]) > reg.Priority(codes[i]) {
			t.Fatalf("codes out of priority order: %v", codes)
		}
	}
}
