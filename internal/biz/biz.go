package biz

import (
	"github.com/devricklin/intercom-autoreply/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Signature   *usecase.SignatureVerifier
	OfficeHours *usecase.OfficeHoursUsecase
	Dedup       *usecase.DedupUsecase
	Reply       *usecase.ReplyUsecase
}
