package assistant

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// MockLLM is a mock implementation of the LLM interface
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func TestHandleNavigatesOnCommand(t *testing.T) {
	var seen []Reply
	a := New(NewCannedResponder(nil, 0, rand.New(rand.NewSource(1))), func(r Reply) { seen = append(seen, r) })

	reply, err := a.Handle(context.Background(), 7, "Could you show inventory please")
	require.NoError(t, err)
	assert.Equal(t, KindCommand, reply.Kind)
	assert.Equal(t, "inventory", reply.Command)
	assert.Equal(t, "/restaurants/7/inventory", reply.Navigate)
	assert.Equal(t, "Opening inventory.", reply.Text)
	assert.Len(t, seen, 1)
}

func TestHandleDashboardCommand(t *testing.T) {
	a := New(NewCannedResponder(nil, 0, nil), nil)
	reply, err := a.Handle(context.Background(), 3, "take me to the DASHBOARD")
	require.NoError(t, err)
	assert.Equal(t, "/restaurants/3", reply.Navigate)
}

func TestHandleFallsThroughToResponder(t *testing.T) {
	replies := []string{"only answer"}
	a := New(NewCannedResponder(replies, 0, nil), nil)

	reply, err := a.Handle(context.Background(), 1, "what's the soup today?")
	require.NoError(t, err)
	assert.Equal(t, KindChat, reply.Kind)
	assert.Equal(t, "only answer", reply.Text)
	assert.Equal(t, "canned", reply.Source)
	assert.Empty(t, reply.Navigate)
}

func TestHandleRejectsEmpty(t *testing.T) {
	a := New(NewCannedResponder(nil, 0, nil), nil)
	_, err := a.Handle(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestCannedResponderHonoursCancellation(t *testing.T) {
	c := NewCannedResponder(nil, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Respond(ctx, "hi")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCannedResponderIsDeterministicWithSeed(t *testing.T) {
	a := NewCannedResponder(nil, 0, rand.New(rand.NewSource(42)))
	b := NewCannedResponder(nil, 0, rand.New(rand.NewSource(42)))
	for i := 0; i < 5; i++ {
		ra, _ := a.Respond(context.Background(), "")
		rb, _ := b.Respond(context.Background(), "")
		assert.Equal(t, ra, rb)
		assert.Contains(t, DefaultReplies, ra)
	}
}

func TestLLMResponderReturnsModelReply(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "  Reorder romaine today.  "}},
	}, nil)

	r := NewLLMResponder(mockLLM, nil)
	text, err := r.Respond(context.Background(), "what should I order?")
	require.NoError(t, err)
	assert.Equal(t, "Reorder romaine today.", text)
	mockLLM.AssertExpectations(t)
}

func TestLLMResponderFallsBack(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))

	r := NewLLMResponder(mockLLM, NewCannedResponder([]string{"fallback"}, 0, nil))
	text, err := r.Respond(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "fallback", text)
}

func TestLLMResponderWithoutFallbackErrors(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(&llms.ContentResponse{}, nil)

	_, err := NewLLMResponder(mockLLM, nil).Respond(context.Background(), "hello")
	assert.Error(t, err)
}

func TestNewOpenAIModelRequiresKey(t *testing.T) {
	_, err := NewOpenAIModel("gpt-4o-mini", "", "")
	assert.Error(t, err)
}
