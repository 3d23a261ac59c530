package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
)

const markerTS = 1700000000

func note(body string) domain.ConversationNote {
	return domain.ConversationNote{PartType: domain.PartTypeNote, Body: body}
}

func TestWasRepliedRecently_WindowIsStrict(t *testing.T) {
	repo := &mockConversationRepo{conv: &domain.Conversation{
		ID:    "c1",
		Parts: []domain.ConversationNote{note("Out of office autoresponder: 1700000000")},
	}}
	uc := NewDedupUsecase(repo, domain.MarkerPrefix, DefaultReplyWindow, zaptest.NewLogger(t))
	ctx := context.Background()

	got, err := uc.WasRepliedRecently(ctx, "c1", time.Unix(markerTS+86399, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got {
		t.Error("Expected reply 86399s ago to count as recent")
	}

	got, err = uc.WasRepliedRecently(ctx, "c1", time.Unix(markerTS+86400, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got {
		t.Error("Expected reply exactly 24h ago not to count")
	}
}

func TestWasRepliedRecently_NoNotes(t *testing.T) {
	repo := &mockConversationRepo{}
	uc := NewDedupUsecase(repo, "", 0, zaptest.NewLogger(t))

	got, err := uc.WasRepliedRecently(context.Background(), "c1", time.Unix(markerTS, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got {
		t.Error("Expected no recent reply")
	}
	if repo.gets != 1 {
		t.Errorf("Expected one fetch, got %d", repo.gets)
	}
}

func TestWasRepliedRecently_FetchError(t *testing.T) {
	boom := errors.New("boom")
	repo := &mockConversationRepo{getErr: boom}
	uc := NewDedupUsecase(repo, "", 0, zaptest.NewLogger(t))

	_, err := uc.WasRepliedRecently(context.Background(), "c1", time.Now())
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped fetch error, got %v", err)
	}
}

func TestFindRecentReply_IgnoresComments(t *testing.T) {
	uc := NewDedupUsecase(&mockConversationRepo{}, "", 0, zaptest.NewLogger(t))

	parts := []domain.ConversationNote{
		{PartType: domain.PartTypeComment, Body: "Out of office autoresponder: 1700000000"},
	}
	if _, found := uc.FindRecentReply(parts, time.Unix(markerTS+60, 0)); found {
		t.Error("Expected comment parts to be ignored")
	}
}

func TestFindRecentReply_SkipsUnparseableNotes(t *testing.T) {
	uc := NewDedupUsecase(&mockConversationRepo{}, "", 0, zaptest.NewLogger(t))

	parts := []domain.ConversationNote{
		note("Out of office autoresponder: never"),
		note("<p>Out of office autoresponder:</p>"),
		note("Customer called, 1700000000"),
		note("<p>Out of office autoresponder: 1700000000</p>"),
	}
	ts, found := uc.FindRecentReply(parts, time.Unix(markerTS+3600, 0))
	if !found {
		t.Fatal("Expected the valid HTML note to be found")
	}
	if ts.Unix() != markerTS {
		t.Errorf("Expected timestamp %d, got %d", markerTS, ts.Unix())
	}
}

func TestFindRecentReply_NoteWithoutMarkerIgnored(t *testing.T) {
	uc := NewDedupUsecase(&mockConversationRepo{}, "", 0, zaptest.NewLogger(t))

	parts := []domain.ConversationNote{note("Escalated to billing 1700000000")}
	if _, found := uc.FindRecentReply(parts, time.Unix(markerTS+60, 0)); found {
		t.Error("Expected note without marker to be ignored")
	}
}

func TestFindRecentReply_OrderIndependent(t *testing.T) {
	uc := NewDedupUsecase(&mockConversationRepo{}, "", 0, zaptest.NewLogger(t))
	now := time.Unix(markerTS+86400*3, 0)

	parts := []domain.ConversationNote{
		note("Out of office autoresponder: 1700000000"), // 3 days old
		note("Out of office autoresponder: garbage"),
		note("Out of office autoresponder: 1700170000"), // just over a day old
		note("Out of office autoresponder: 1700250000"), // within window
		{PartType: domain.PartTypeComment, Body: "hello"},
	}

	// every rotation of the slice must give the same answer
	for i := range parts {
		rotated := append(append([]domain.ConversationNote{}, parts[i:]...), parts[:i]...)
		if _, found := uc.FindRecentReply(rotated, now); !found {
			t.Errorf("Rotation %d: expected a recent reply", i)
		}
	}

	stale := parts[:3]
	for i := range stale {
		rotated := append(append([]domain.ConversationNote{}, stale[i:]...), stale[:i]...)
		if _, found := uc.FindRecentReply(rotated, now); found {
			t.Errorf("Rotation %d: expected no recent reply among stale notes", i)
		}
	}
}

func TestFindRecentReply_CustomWindow(t *testing.T) {
	uc := NewDedupUsecase(&mockConversationRepo{}, "", time.Hour, zaptest.NewLogger(t))

	parts := []domain.ConversationNote{note("Out of office autoresponder: 1700000000")}
	if _, found := uc.FindRecentReply(parts, time.Unix(markerTS+3599, 0)); !found {
		t.Error("Expected hit inside one hour window")
	}
	if _, found := uc.FindRecentReply(parts, time.Unix(markerTS+3600, 0)); found {
		t.Error("Expected miss at one hour")
	}
}
