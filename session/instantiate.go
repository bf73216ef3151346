package session

import (
	"github.com/Sieru626/boardgame-venue-sub000/template"
)

// EffectiveTemplate resolves the template a new match would use, in
// priority order: draft, then active, then the built-in default for mode.
func (s *Session) EffectiveTemplate(mode string) (*template.Template, error) {
	if s.DraftTemplate != nil {
		return s.DraftTemplate, nil
	}
	if s.ActiveTemplate != nil {
		return s.ActiveTemplate, nil
	}
	if mode == "" {
		mode = template.ModeElimination
	}
	return template.DefaultFor(mode)
}

// SaveDraft stores a host-authored (or assistant-proposed) draft. Drafts
// stay mutable until promoted; no elevated trust either way.
func (s *Session) SaveDraft(actorID string, tpl *template.Template) error {
	if actorID != s.HostID {
		return ErrNotHost
	}
	if tpl == nil {
		return ErrNoDraft
	}
	s.DraftTemplate = tpl.Clone()
	return nil
}

// PromoteDraft freezes the draft as the active template and starts a
// fresh match from it. Host only.
func (s *Session) PromoteDraft(actorID string) error {
	if actorID != s.HostID {
		return ErrNotHost
	}
	if s.DraftTemplate == nil {
		return ErrNoDraft
	}
	s.ActiveTemplate = s.DraftTemplate
	s.DraftTemplate = nil
	return Instantiate(s, s.ActiveTemplate)
}

// ApplyTemplate makes an externally sourced template active and starts a
// fresh match from it, exactly the promote path. Host only.
func (s *Session) ApplyTemplate(actorID string, tpl *template.Template) error {
	if actorID != s.HostID {
		return ErrNotHost
	}
	if tpl == nil {
		return ErrNoDraft
	}
	s.ActiveTemplate = tpl.Clone()
	s.DraftTemplate = nil
	return Instantiate(s, s.ActiveTemplate)
}

// StartGame begins a match in the given mode from the effective template.
// If the effective template declares a different mode, the built-in
// default for the requested mode is used instead. Host only.
func (s *Session) StartGame(actorID, mode string) error {
	if actorID != s.HostID {
		return ErrNotHost
	}
	tpl, err := s.EffectiveTemplate(mode)
	if err != nil {
		return err
	}
	if mode != "" && tpl.Mode != mode {
		if tpl, err = template.DefaultFor(mode); err != nil {
			return err
		}
	}
	return Instantiate(s, tpl)
}

// Instantiate converts a content template into a freshly dealt mode
// state: shared zones and hands reset, one mode state built for the
// template's declared mode. A template that yields zero cards for its
// required piles is never a hard failure; the built-in default deck is
// substituted and the substitution logged.
func Instantiate(s *Session, tpl *template.Template) error {
	active := s.ActivePlayers()
	if len(active) < minPlayers {
		return ErrInsufficientPlayers
	}

	if emptyForMode(tpl) {
		fallback, err := template.DefaultFor(tpl.Mode)
		if err != nil {
			return err
		}
		s.AppendEvent("template-substituted", "",
			"template had no playable cards; using built-in "+fallback.Name)
		tpl = fallback
	}

	s.resetZones()
	s.clearModes()
	s.Mode = tpl.Mode
	s.Phase = PhasePlaying

	switch tpl.Mode {
	case template.ModeElimination:
		setupElimination(s, tpl, active)
	case template.ModePairMatch:
		setupPairMatch(s, tpl, active)
	case template.ModePushLuck:
		setupPushLuck(s, tpl, active)
	case template.ModeSocialRole:
		setupSocialRole(s, tpl, active)
	default:
		return template.ErrUnknownMode
	}

	s.AppendEvent("match-start", s.HostID, "new "+tpl.Mode+" match")
	return nil
}

// emptyForMode reports whether the template expands to zero cards for the
// piles its mode requires.
func emptyForMode(tpl *template.Template) bool {
	switch tpl.Mode {
	case template.ModeSocialRole:
		return len(tpl.Expand(template.PileScene))+len(tpl.Expand(template.PileLaw)) == 0
	default:
		return len(tpl.Expand()) == 0
	}
}
