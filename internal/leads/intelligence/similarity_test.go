package intelligence

import (
	"testing"

	"crm_intel_backend/internal/leads/repository"
)

func TestFindSimilarLeadsExcludesSelf(t *testing.T) {
	lead := newLead("Alpha")
	lead.Company = "Acme"
	got := FindSimilarLeads(lead, []repository.Lead{lead})
	if len(got) != 0 {
		t.Fatalf("expected no matches against a population of self, got %d", len(got))
	}
}

func TestFindSimilarLeadsEmptyPopulation(t *testing.T) {
	if got := FindSimilarLeads(newLead("Alpha"), nil); len(got) != 0 {
		t.Fatalf("expected empty result for nil population, got %d", len(got))
	}
}

func TestFindSimilarLeadsFullMatchScoresHundred(t *testing.T) {
	lead := newLead("Alpha")
	lead.Company = "Acme"
	lead.Source = "referral"
	lead.Status = "new"
	lead.Score = 50

	twin := newLead("Beta")
	twin.Company = "acme"
	twin.Source = "Referral"
	twin.Status = "New"
	twin.Score = 55

	got := FindSimilarLeads(lead, []repository.Lead{lead, twin})
	if len(got) != 1 {
		t.Fatalf("expected one match, got %d", len(got))
	}
	if got[0].LeadID != twin.ID || got[0].Score != 100 {
		t.Fatalf("expected twin at 100, got %s at %v", got[0].Name, got[0].Score)
	}
}

func TestFindSimilarLeadsFiltersZeroScores(t *testing.T) {
	lead := newLead("Alpha")
	lead.Company = "Acme"
	lead.Source = "referral"
	lead.Status = "new"
	lead.Score = 90

	stranger := newLead("Beta")
	stranger.Company = "Globex"
	stranger.Source = "cold-call"
	stranger.Status = "lost"
	stranger.Score = 10

	got := FindSimilarLeads(lead, []repository.Lead{lead, stranger})
	if len(got) != 0 {
		t.Fatalf("expected unrelated lead to be filtered, got %d matches", len(got))
	}
}

func TestFindSimilarLeadsTopThreeDescending(t *testing.T) {
	lead := newLead("Alpha")
	lead.Company = "Acme"
	lead.Source = "referral"
	lead.Status = "new"
	lead.Score = 50

	population := []repository.Lead{lead}
	for i := 0; i < 5; i++ {
		peer := newLead("Peer")
		peer.Score = 50
		peer.Status = "new"
		if i < 3 {
			peer.Source = "referral"
		}
		if i < 2 {
			peer.Company = "Acme"
		}
		population = append(population, peer)
	}

	got := FindSimilarLeads(lead, population)
	if len(got) != maxSimilarLeads {
		t.Fatalf("expected exactly %d matches, got %d", maxSimilarLeads, len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("expected descending scores, got %v before %v", got[i-1].Score, got[i].Score)
		}
	}
	if got[0].Score != 100 {
		t.Fatalf("expected best match first, got %v", got[0].Score)
	}
}
