package room

import (
	"context"
	"fmt"
	"time"

	"github.com/Sieru626/boardgame-venue-sub000/protocol"
	"github.com/Sieru626/boardgame-venue-sub000/session"
	"github.com/Sieru626/boardgame-venue-sub000/template"
)

// dispatch maps an action to a pure mutation over the session clone.
// Adding a mode means adding cases here and a state variant in session,
// nothing else.
func (r *runner) dispatch(ctx context.Context, act protocol.Inbound) (func(*session.Session) error, error) {
	switch act.Kind {

	case protocol.Join:
		return func(s *session.Session) error { return s.Join(act.PlayerID, act.Name) }, nil
	case protocol.Connect:
		return func(s *session.Session) error { return s.SetConnected(act.PlayerID, true) }, nil
	case protocol.Disconnect:
		return func(s *session.Session) error { return s.SetConnected(act.PlayerID, false) }, nil
	case protocol.Chat:
		return func(s *session.Session) error { return s.Chat(act.PlayerID, act.Text) }, nil
	case protocol.Roll:
		return func(s *session.Session) error { return s.Roll(act.PlayerID) }, nil
	case protocol.Draw:
		return func(s *session.Session) error { return s.DrawCard(act.PlayerID) }, nil
	case protocol.Play:
		return func(s *session.Session) error { return s.PlayCard(act.PlayerID, act.Pos) }, nil

	case protocol.Reset:
		return func(s *session.Session) error { return s.Reset(act.PlayerID) }, nil
	case protocol.Shuffle:
		return func(s *session.Session) error { return s.ShuffleDraw(act.PlayerID) }, nil
	case protocol.ToggleSpectator:
		return func(s *session.Session) error { return s.ToggleSpectator(act.PlayerID, act.Target) }, nil
	case protocol.Spectate:
		return func(s *session.Session) error { return s.ToggleSpectator(act.PlayerID, act.PlayerID) }, nil
	case protocol.StartGame:
		return func(s *session.Session) error { return s.StartGame(act.PlayerID, act.Target) }, nil

	case protocol.ElimPick:
		return func(s *session.Session) error { return s.EliminationPick(act.PlayerID, act.Pos) }, nil

	case protocol.PairFlip:
		return func(s *session.Session) error { return s.PairMatchFlip(act.PlayerID, act.CardID, time.Now()) }, nil
	case protocol.PairResolve:
		return func(s *session.Session) error { return s.PairMatchResolve(time.Now()) }, nil

	case protocol.LuckPass:
		return func(s *session.Session) error { return s.PushLuckPass(act.PlayerID) }, nil
	case protocol.LuckDiscardDraw:
		return func(s *session.Session) error { return s.PushLuckDiscardDraw(act.PlayerID, act.Pos) }, nil
	case protocol.LuckRedrawAll:
		return func(s *session.Session) error { return s.PushLuckRedrawAll(act.PlayerID) }, nil

	case protocol.RoleScene:
		return func(s *session.Session) error { return s.SocialRoleReveal(act.PlayerID, template.PileScene) }, nil
	case protocol.RoleLaw:
		return func(s *session.Session) error { return s.SocialRoleReveal(act.PlayerID, template.PileLaw) }, nil
	case protocol.RoleMedal:
		return func(s *session.Session) error { return s.SocialRoleAward(act.PlayerID, act.Target, act.Delta) }, nil
	case protocol.RolePurge:
		return func(s *session.Session) error { return s.SocialRolePurge(act.PlayerID, act.Target) }, nil
	case protocol.RoleAccuse:
		return func(s *session.Session) error { return s.SocialRoleAccuse(act.PlayerID, act.Target, act.Text) }, nil
	case protocol.RoleTimerStart:
		return func(s *session.Session) error { return s.SocialRoleStartTimer(act.PlayerID, act.Seconds) }, nil
	case protocol.RoleTimerExtend:
		return func(s *session.Session) error { return s.SocialRoleExtendTimer(act.PlayerID, act.Seconds) }, nil
	case protocol.RoleSetThreshold:
		return func(s *session.Session) error { return s.SocialRoleSetThreshold(act.PlayerID, act.Threshold) }, nil

	case protocol.TemplateSaveDraft:
		return func(s *session.Session) error { return s.SaveDraft(act.PlayerID, act.Template) }, nil
	case protocol.TemplatePromote:
		return func(s *session.Session) error { return s.PromoteDraft(act.PlayerID) }, nil
	case protocol.TemplateApply:
		tpl, err := r.m.tstore.LoadTemplate(ctx, act.TemplateID)
		if err != nil {
			return nil, err
		}
		return func(s *session.Session) error { return s.ApplyTemplate(act.PlayerID, tpl) }, nil
	}

	return nil, fmt.Errorf("unknown action kind %q", act.Kind)
}

// handleTemplate serves the read-side template actions: fetching the
// effective template (draft beats active beats built-in default) and
// saving the active template to the shared store.
func (r *runner) handleTemplate(ctx context.Context, sess *session.Session, act protocol.Inbound) protocol.Outbound {
	switch act.Kind {
	case protocol.TemplateFetch:
		tpl, err := sess.EffectiveTemplate(act.Target)
		if err != nil {
			return protocol.Outbound{Kind: protocol.KindError, Reason: err.Error()}
		}
		return protocol.Outbound{Kind: protocol.KindTemplate, Version: sess.Version, Template: tpl}

	case protocol.TemplateSave:
		if act.PlayerID != sess.HostID {
			return protocol.Outbound{Kind: protocol.KindError, Reason: session.ErrNotHost.Error()}
		}
		if sess.ActiveTemplate == nil {
			return protocol.Outbound{Kind: protocol.KindError, Reason: session.ErrNoDraft.Error()}
		}
		if err := r.m.tstore.SaveTemplate(ctx, sess.ActiveTemplate); err != nil {
			return protocol.Outbound{Kind: protocol.KindError, Reason: err.Error()}
		}
		return protocol.Outbound{Kind: protocol.KindTemplate, Version: sess.Version, Template: sess.ActiveTemplate}
	}

	return protocol.Outbound{Kind: protocol.KindError, Reason: "unknown template action"}
}
