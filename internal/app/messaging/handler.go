package messaging

import (
	"context"
	"fmt"

	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/application/usecase"
	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/logging"
)

// Styler is what the handler needs from the display settings use case.
type Styler interface {
	BroadcastDomain(ctx context.Context, domain string) (usecase.BroadcastResult, error)
	OnNavigationCompleted(ctx context.Context, ev port.NavigationEvent) error
	ResetOnTab(ctx context.Context, id port.TabID, field entity.SettingField) error
}

// Handler dispatches signals to the styler.
type Handler struct {
	styler Styler
	dedup  *Deduplicator
}

// NewHandler creates a handler. dedup may be nil to process every signal.
func NewHandler(styler Styler, dedup *Deduplicator) *Handler {
	return &Handler{styler: styler, dedup: dedup}
}

// Handle processes one signal.
func (h *Handler) Handle(ctx context.Context, msg Message) error {
	ctx = logging.WithComponent(ctx, "messaging")
	log := logging.FromContext(ctx)

	if err := msg.Validate(); err != nil {
		return err
	}
	if h.dedup != nil && msg.Action == ActionNavigationCompleted && h.dedup.IsDuplicate(msg) {
		log.Debug().Str("tab_id", msg.TabID).Str("url", msg.URL).Msg("duplicate navigation ignored")
		return nil
	}

	if field, ok := msg.ResetField(); ok {
		if err := h.styler.ResetOnTab(ctx, port.TabID(msg.TabID), field); err != nil {
			return fmt.Errorf("failed to handle %s: %w", msg.Action, err)
		}
		return nil
	}

	switch msg.Action {
	case ActionApplySettingsForDomain:
		result, err := h.styler.BroadcastDomain(ctx, msg.Domain)
		if err != nil {
			return fmt.Errorf("failed to handle %s: %w", msg.Action, err)
		}
		log.Debug().Str("domain", msg.Domain).Int("tabs", result.Styled).Msg("settings applied for domain")
	case ActionNavigationCompleted:
		ev := port.NavigationEvent{TabID: port.TabID(msg.TabID), URL: msg.URL}
		if err := h.styler.OnNavigationCompleted(ctx, ev); err != nil {
			return fmt.Errorf("failed to handle %s: %w", msg.Action, err)
		}
	}
	return nil
}
