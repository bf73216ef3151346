package session

import (
	"sort"
	"testing"

	utils "github.com/Sieru626/boardgame-venue-sub000/internal"
	"github.com/Sieru626/boardgame-venue-sub000/template"
	"github.com/stretchr/testify/assert"
)

func lobbySession(t *testing.T) *Session {
	t.Helper()
	s := New("room-1", "ABCDEF", "p1", "Hermione")
	utils.AssertNoError(t, s.Join("p2", "Harry"))
	return s
}

func TestInstantiate(t *testing.T) {
	t.Run("requires two active players", func(t *testing.T) {
		s := New("room-1", "ABCDEF", "p1", "Hermione")
		tpl, _ := template.DefaultFor(template.ModeElimination)
		utils.AssertEqual(t, Instantiate(s, tpl), ErrInsufficientPlayers)
	})

	t.Run("spectators are excluded from dealing", func(t *testing.T) {
		s := lobbySession(t)
		utils.AssertNoError(t, s.Join("p3", "Ron"))
		p3, _ := s.FindPlayer("p3")
		p3.Spectator = true

		tpl, _ := template.DefaultFor(template.ModeElimination)
		utils.AssertNoError(t, Instantiate(s, tpl))

		assert.Len(t, p3.Hand, 0)
		assert.Len(t, s.Elimination.Order, 2)
	})

	t.Run("an empty pile set falls back to a dealable default", func(t *testing.T) {
		for _, mode := range []string{
			template.ModeElimination,
			template.ModePairMatch,
			template.ModePushLuck,
			template.ModeSocialRole,
		} {
			s := lobbySession(t)
			utils.AssertNoError(t, Instantiate(s, template.New(mode)))
			utils.AssertEqual(t, s.Mode, mode)
			utils.AssertEqual(t, s.Phase, PhasePlaying)

			dealable := false
			switch mode {
			case template.ModeElimination, template.ModePushLuck:
				for _, p := range s.Players {
					dealable = dealable || len(p.Hand) > 0
				}
			case template.ModePairMatch:
				dealable = len(s.PairMatch.Board) > 0
			case template.ModeSocialRole:
				dealable = len(s.SocialRole.SceneDeck) > 0
			}
			utils.AssertTrue(t, dealable)

			last := s.Events[len(s.Events)-2]
			utils.AssertEqual(t, last.Kind, "template-substituted")
		}
	})

	t.Run("builds exactly one mode state", func(t *testing.T) {
		s := lobbySession(t)
		tpl, _ := template.DefaultFor(template.ModePushLuck)
		utils.AssertNoError(t, Instantiate(s, tpl))

		states := 0
		if s.Elimination != nil {
			states++
		}
		if s.PairMatch != nil {
			states++
		}
		if s.PushLuck != nil {
			states++
		}
		if s.SocialRole != nil {
			states++
		}
		utils.AssertEqual(t, states, 1)
	})
}

func TestTemplateLifecycle(t *testing.T) {
	draft := func() *template.Template {
		tpl := template.New(template.ModeElimination)
		tpl.Piles = []template.Pile{{Title: "deck", Entries: []template.Entry{
			{Name: "Red", Count: 4, Enabled: true},
			{Name: "Blue", Count: 2, Enabled: true},
			{Name: "Ghost", Count: 1, Enabled: true},
		}}}
		return tpl
	}

	t.Run("draft beats active beats built-in default", func(t *testing.T) {
		s := lobbySession(t)

		tpl, err := s.EffectiveTemplate(template.ModePairMatch)
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, tpl.ID, "builtin-pairmatch")

		s.ActiveTemplate = template.New(template.ModeElimination)
		tpl, _ = s.EffectiveTemplate("")
		utils.AssertEqual(t, tpl.ID, s.ActiveTemplate.ID)

		utils.AssertNoError(t, s.SaveDraft("p1", draft()))
		tpl, _ = s.EffectiveTemplate("")
		utils.AssertEqual(t, tpl.ID, s.DraftTemplate.ID)
	})

	t.Run("saving a draft is host-only", func(t *testing.T) {
		s := lobbySession(t)
		utils.AssertEqual(t, s.SaveDraft("p2", draft()), ErrNotHost)
	})

	t.Run("promote freezes the draft and starts a match", func(t *testing.T) {
		s := lobbySession(t)
		utils.AssertNoError(t, s.SaveDraft("p1", draft()))
		utils.AssertNoError(t, s.PromoteDraft("p1"))

		utils.AssertTrue(t, s.DraftTemplate == nil)
		utils.AssertTrue(t, s.ActiveTemplate != nil)
		utils.AssertEqual(t, s.Mode, template.ModeElimination)
		utils.AssertTrue(t, s.Elimination != nil)
	})

	t.Run("promoting with no draft fails", func(t *testing.T) {
		s := lobbySession(t)
		utils.AssertEqual(t, s.PromoteDraft("p1"), ErrNoDraft)
	})

	t.Run("rematch reproduces the draft's card multiset", func(t *testing.T) {
		s := lobbySession(t)
		utils.AssertNoError(t, s.SaveDraft("p1", draft()))
		utils.AssertNoError(t, s.PromoteDraft("p1"))

		// rematch from the now-active template
		utils.AssertNoError(t, s.StartGame("p1", template.ModeElimination))

		want := []string{"Red", "Red", "Red", "Red", "Blue", "Blue", "Ghost"}
		got := []string{}
		for _, p := range s.Players {
			for _, c := range p.Hand {
				got = append(got, c.Rank)
			}
		}
		for _, c := range s.Elimination.Discard {
			got = append(got, c.Rank)
		}
		sort.Strings(want)
		sort.Strings(got)
		utils.AssertDeepEqual(t, got, want)
	})

	t.Run("apply-template follows the promote path", func(t *testing.T) {
		s := lobbySession(t)
		tpl, _ := template.DefaultFor(template.ModePairMatch)

		utils.AssertEqual(t, s.ApplyTemplate("p2", tpl), ErrNotHost)

		utils.AssertNoError(t, s.ApplyTemplate("p1", tpl))
		utils.AssertEqual(t, s.Mode, template.ModePairMatch)
		utils.AssertTrue(t, s.PairMatch != nil)
		utils.AssertEqual(t, s.ActiveTemplate.ID, tpl.ID)
	})
}
