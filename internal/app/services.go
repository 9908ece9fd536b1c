package app

import (
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
	"github.com/Alijeyrad/trialbook_backend/internal/service/chat"
	"github.com/Alijeyrad/trialbook_backend/internal/service/dialogue"
	"github.com/Alijeyrad/trialbook_backend/internal/service/faq"
	"github.com/Alijeyrad/trialbook_backend/internal/service/scheduling"
	"github.com/Alijeyrad/trialbook_backend/internal/service/user"
	"github.com/Alijeyrad/trialbook_backend/pkg/nlu"
	"github.com/Alijeyrad/trialbook_backend/pkg/observability"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideSchedulingService,
		ProvideUserService,
		ProvideFAQService,
		ProvideDialogueManager,
		ProvideChatService,
	),
)

func ProvideSchedulingService(db *repo.Client, nc *nats.Conn) scheduling.Service {
	return scheduling.New(db, nc)
}

func ProvideUserService(db *repo.Client) user.Service {
	return user.New(db)
}

func ProvideFAQService(db *repo.Client) faq.Service {
	return faq.New(db)
}

func ProvideDialogueManager(slots scheduling.Service, users user.Service, store dialogue.SessionStore) *dialogue.Manager {
	return dialogue.NewManager(slots, users, store)
}

// ProvideChatService takes the OTel provider so the reply counter is created
// against the installed meter provider.
func ProvideChatService(
	dm *dialogue.Manager,
	faqs faq.Service,
	slots scheduling.Service,
	users user.Service,
	responder nlu.Responder,
	_ *observability.Provider,
) chat.Service {
	return chat.New(dm, faqs, slots, users, responder)
}
