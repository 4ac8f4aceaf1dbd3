package store

import (
	"testing"

	"party-advisor-be/pkg/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionDefaultsMode(t *testing.T) {
	s := NewSession("s1", "u1", Mode("turbo"))
	assert.Equal(t, ModeStandard, s.Mode())

	s.SetMode(ModePro)
	assert.Equal(t, ModePro, s.Mode())
}

func TestPendingLifecycle(t *testing.T) {
	s := NewSession("s1", "", ModeStandard)
	s.AddPending(PendingDocument{ID: "p1", DisplayName: "report.pdf", MIMEType: "application/pdf", Payload: []byte("x")})
	s.AddPending(PendingDocument{ID: "p2", DisplayName: "notes.txt"})

	doc, ok := s.ResolvePending("p1", knowledge.CategoryKB2)
	require.True(t, ok)
	assert.Equal(t, knowledge.CategoryKB2, doc.Category)
	assert.Equal(t, "report.pdf", doc.DisplayName)
	assert.Equal(t, []byte("x"), doc.Payload)

	_, ok = s.ResolvePending("p1", knowledge.CategoryKB1)
	assert.False(t, ok)

	_, ok = s.TakePending("p2")
	assert.True(t, ok)
	assert.Empty(t, s.Pending())
	assert.Len(t, s.Documents(), 1)
}

func TestRemoveDocument(t *testing.T) {
	s := NewSession("s1", "", ModeStandard)
	s.AddDocument(KnowledgeDocument{ID: "d1", Category: knowledge.CategoryKB1})
	s.AddDocument(KnowledgeDocument{ID: "d2", Category: knowledge.CategoryKB2})

	removed, ok := s.RemoveDocument("d1")
	require.True(t, ok)
	assert.Equal(t, "d1", removed.ID)

	_, ok = s.RemoveDocument("d1")
	assert.False(t, ok)

	docs := s.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "d2", docs[0].ID)
}

func TestTurnLifecycle(t *testing.T) {
	s := NewSession("s1", "", ModePro)
	s.AddDocument(KnowledgeDocument{ID: "d1"})

	history, docs, mode := s.BeginTurn(
		Message{ID: "u1", Speaker: SpeakerUser, RawText: "hỏi", Status: StatusFinal},
		Message{ID: "a1", Speaker: SpeakerAssistant, Status: StatusStreaming},
	)
	assert.Empty(t, history)
	assert.Len(t, docs, 1)
	assert.Equal(t, ModePro, mode)

	assert.True(t, s.UpdateMessage("a1", "partial", ""))
	msg, ok := s.Message("a1")
	require.True(t, ok)
	assert.Equal(t, "partial", msg.RawText)

	final, ok := s.FinalizeMessage("a1", "partial text", "why", StatusFinal)
	require.True(t, ok)
	assert.Equal(t, StatusFinal, final.Status)

	// finalized messages are immutable
	assert.False(t, s.UpdateMessage("a1", "changed", ""))
	_, ok = s.FinalizeMessage("a1", "changed", "", StatusFailed)
	assert.False(t, ok)

	history, _, _ = s.BeginTurn(
		Message{ID: "u2", Speaker: SpeakerUser, Status: StatusFinal},
		Message{ID: "a2", Speaker: SpeakerAssistant, Status: StatusStreaming},
	)
	require.Len(t, history, 2)
	assert.Equal(t, "partial text", history[1].RawText)

	msgs := s.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, []string{"u1", "a1", "u2", "a2"}, []string{msgs[0].ID, msgs[1].ID, msgs[2].ID, msgs[3].ID})
}

func TestDocumentsReturnsCopy(t *testing.T) {
	s := NewSession("s1", "", ModeStandard)
	s.AddDocument(KnowledgeDocument{ID: "d1"})

	docs := s.Documents()
	docs[0].ID = "mutated"

	assert.Equal(t, "d1", s.Documents()[0].ID)
}
