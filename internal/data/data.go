package data

import (
	"github.com/devricklin/intercom-autoreply/internal/biz/repo"
	"github.com/devricklin/intercom-autoreply/internal/infra/feishu"
	"github.com/devricklin/intercom-autoreply/internal/infra/intercom"
)

// Repositories contains all repositories
type Repositories struct {
	Conversation repo.ConversationRepo
	Alert        repo.AlertRepo // nil when alerts are disabled
}

// NewRepositories creates all repositories.
// feishuClient may be nil, in which case alerts are disabled.
func NewRepositories(
	intercomClient *intercom.Client,
	feishuClient *feishu.Client,
	alertChatID string,
) *Repositories {
	repos := &Repositories{
		Conversation: NewIntercomRepo(intercomClient),
	}
	// avoid storing a typed nil in the interface
	if feishuClient != nil {
		repos.Alert = NewFeishuAlertRepo(feishuClient, alertChatID)
	}
	return repos
}
