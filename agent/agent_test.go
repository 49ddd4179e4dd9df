package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietravel-ai/travelbot/history"
	"github.com/vietravel-ai/travelbot/llm"
	"github.com/vietravel-ai/travelbot/log"
	"github.com/vietravel-ai/travelbot/rag"
	"github.com/vietravel-ai/travelbot/weather"
)

// fakeModel scripts the three chat roles (answer, location extraction,
// advice) by dispatching on the system prompt, plus the vision call
type fakeModel struct {
	answer      string
	answerErr   error
	location    string
	locationErr error
	advice      string
	adviceErr   error
	visionText  string
	visionErr   error

	adviceCalls int
	lastQuery   string
	lastSystem  string
	lastHistory []llm.Message
}

func (f *fakeModel) Chat(ctx context.Context, systemPrompt string, messages []llm.Message) (string, error) {
	switch {
	case strings.HasPrefix(systemPrompt, personaPrompt[:20]):
		f.lastSystem = systemPrompt
		f.lastHistory = messages[:len(messages)-1]
		f.lastQuery = messages[len(messages)-1].Content
		return f.answer, f.answerErr
	case systemPrompt == locationSystemPrompt:
		return f.location, f.locationErr
	case systemPrompt == adviceSystemPrompt:
		f.adviceCalls++
		return f.advice, f.adviceErr
	}
	return "", fmt.Errorf("unexpected system prompt: %s", systemPrompt)
}

func (f *fakeModel) Vision(ctx context.Context, systemPrompt, prompt, imageDataURI string) (string, error) {
	return f.visionText, f.visionErr
}

// fakeRetriever returns fixed passages and records queries
type fakeRetriever struct {
	passages []string
	err      error
	queries  []string
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string) ([]rag.Document, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	docs := make([]rag.Document, len(f.passages))
	for i, p := range f.passages {
		docs[i] = rag.Document{Content: p}
	}
	return docs, nil
}

func (f *fakeRetriever) RetrieveWithK(ctx context.Context, query string, k int) ([]rag.Document, error) {
	return f.Retrieve(ctx, query)
}

// fakeWeather counts lookups
type fakeWeather struct {
	report *weather.Report
	err    error
	calls  int
}

func (f *fakeWeather) Current(ctx context.Context, place string) (*weather.Report, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func newTestAgent(t *testing.T, model llm.Model, retriever rag.Retriever, opts ...Option) *Agent {
	t.Helper()
	opts = append(opts, WithLogger(&log.NoOpLogger{}))
	a, err := New(model, retriever, opts...)
	require.NoError(t, err)
	return a
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(nil, &fakeRetriever{})
	assert.Error(t, err)

	_, err = New(&fakeModel{}, nil)
	assert.Error(t, err)
}

func TestProcessTurn_BasicTextTurn(t *testing.T) {
	model := &fakeModel{answer: "Chào bạn!", location: "Không có"}
	retriever := &fakeRetriever{}
	a := newTestAgent(t, model, retriever)

	result := a.ProcessTurn(context.Background(), TurnInput{Query: "Xin chào"})

	assert.Equal(t, "Chào bạn!", result.FinalAnswer)
	assert.Equal(t, QueryText, result.QueryKind)
	assert.Equal(t, "", result.Location)
	assert.Equal(t, []history.Turn{
		{Role: history.RoleUser, Content: "Xin chào"},
		{Role: history.RoleAssistant, Content: "Chào bạn!"},
	}, result.History)

	// The current query reaches the model prefixed, history stays raw
	assert.Equal(t, "Câu hỏi: Xin chào", model.lastQuery)
}

func TestProcessTurn_PassagesGroundTheSystemPrompt(t *testing.T) {
	model := &fakeModel{answer: "đáp", location: "Không có"}
	retriever := &fakeRetriever{passages: []string{"Hồ Gươm nằm ở trung tâm", "Phố cổ có 36 phố phường"}}
	a := newTestAgent(t, model, retriever)

	a.ProcessTurn(context.Background(), TurnInput{Query: "Hà Nội?"})
	assert.Contains(t, model.lastSystem, "Hồ Gươm nằm ở trung tâm")
	assert.Contains(t, model.lastSystem, "Phố cổ có 36 phố phường")

	// With nothing retrieved the prompt carries the no-context sentinel
	a2 := newTestAgent(t, model, &fakeRetriever{})
	a2.ProcessTurn(context.Background(), TurnInput{Query: "Hà Nội?"})
	assert.Contains(t, model.lastSystem, noContextSentinel)
}

func TestProcessTurn_NeverFailsAndAlwaysAnswers(t *testing.T) {
	model := &fakeModel{
		answerErr:   errors.New("quota exceeded"),
		locationErr: errors.New("down"),
	}
	retriever := &fakeRetriever{err: errors.New("index unreachable")}
	wp := &fakeWeather{err: errors.New("down")}
	a := newTestAgent(t, model, retriever, WithWeather(wp))

	result := a.ProcessTurn(context.Background(), TurnInput{Query: "Hà Nội có gì?"})

	assert.NotEmpty(t, result.FinalAnswer)
	assert.Contains(t, result.FinalAnswer, "Xin lỗi")
	assert.Contains(t, result.FinalAnswer, "quota exceeded")
	// History untouched when generation fails
	assert.Empty(t, result.History)
	// No location means no weather lookup either
	assert.Equal(t, 0, wp.calls)
}

func TestProcessTurn_HistoryBoundOverManyTurns(t *testing.T) {
	model := &fakeModel{answer: "đáp", location: "Không có"}
	a := newTestAgent(t, model, &fakeRetriever{})

	var h []history.Turn
	for i := 1; i <= 11; i++ {
		result := a.ProcessTurn(context.Background(), TurnInput{
			Query:   fmt.Sprintf("câu hỏi %d", i),
			History: h,
		})
		h = result.History
	}

	require.Len(t, h, history.MaxEntries)
	assert.Equal(t, "câu hỏi 2", h[0].Content)
	for _, turn := range h {
		assert.NotEqual(t, "câu hỏi 1", turn.Content)
	}
}

func TestProcessTurn_HistoryReplayedToModel(t *testing.T) {
	model := &fakeModel{answer: "đáp", location: "Không có"}
	a := newTestAgent(t, model, &fakeRetriever{})

	prior := []history.Turn{
		{Role: history.RoleUser, Content: "trước"},
		{Role: history.RoleAssistant, Content: "đã trả lời"},
	}
	a.ProcessTurn(context.Background(), TurnInput{Query: "tiếp", History: prior})

	require.Len(t, model.lastHistory, 2)
	assert.Equal(t, llm.RoleUser, model.lastHistory[0].Role)
	assert.Equal(t, llm.RoleAssistant, model.lastHistory[1].Role)
	assert.Equal(t, "đã trả lời", model.lastHistory[1].Content)
}

func TestProcessTurn_ImageTurn(t *testing.T) {
	model := &fakeModel{visionText: "Phở bò tại Hà Nội", answer: "Món phở nổi tiếng", location: "Không có"}
	retriever := &fakeRetriever{}
	a := newTestAgent(t, model, retriever)

	result := a.ProcessTurn(context.Background(), TurnInput{
		Query: "",
		Image: []byte{0xFF, 0xD8, 0xFF},
	})

	assert.Equal(t, QueryImage, result.QueryKind)
	// Retrieval ran on the image-derived query
	require.Len(t, retriever.queries, 1)
	assert.Equal(t, "Phở bò tại Hà Nội", retriever.queries[0])
	assert.Equal(t, "Món phở nổi tiếng", result.FinalAnswer)
}

func TestProcessTurn_ImageAnalysisFailureFallsBackToText(t *testing.T) {
	model := &fakeModel{visionErr: errors.New("vision down"), answer: "đáp", location: "Không có"}
	retriever := &fakeRetriever{}
	a := newTestAgent(t, model, retriever)

	result := a.ProcessTurn(context.Background(), TurnInput{
		Query: "ignored",
		Image: []byte{0x01},
	})

	assert.Equal(t, QueryText, result.QueryKind)
	require.Len(t, retriever.queries, 1)
	assert.Equal(t, "Không thể phân tích hình ảnh này", retriever.queries[0])
	assert.Equal(t, "đáp", result.FinalAnswer)
}

func TestProcessTurn_RetrievalFailureDegradesToNoContext(t *testing.T) {
	model := &fakeModel{answer: "đáp", location: "Không có"}
	retriever := &fakeRetriever{err: errors.New("index unreachable")}
	a := newTestAgent(t, model, retriever)

	result := a.ProcessTurn(context.Background(), TurnInput{Query: "Hà Nội?"})
	assert.Equal(t, "đáp", result.FinalAnswer)
}

func TestProcessTurn_WeatherShortCircuits(t *testing.T) {
	t.Run("No location extracted", func(t *testing.T) {
		wp := &fakeWeather{}
		model := &fakeModel{answer: "đáp", location: "Không có"}
		a := newTestAgent(t, model, &fakeRetriever{}, WithWeather(wp))

		result := a.ProcessTurn(context.Background(), TurnInput{Query: "phở ngon không?"})
		assert.Equal(t, "đáp", result.FinalAnswer)
		assert.Equal(t, 0, wp.calls)
	})

	t.Run("No provider configured", func(t *testing.T) {
		model := &fakeModel{answer: "đáp", location: "Hanoi"}
		a := newTestAgent(t, model, &fakeRetriever{})

		result := a.ProcessTurn(context.Background(), TurnInput{Query: "Hà Nội?"})
		assert.Equal(t, "đáp", result.FinalAnswer)
		assert.Equal(t, "Hanoi", result.Location)
	})
}

func TestProcessTurn_WeatherLookupFailure(t *testing.T) {
	wp := &fakeWeather{err: weather.ErrNotFound}
	model := &fakeModel{answer: "Hà Nội có nhiều di tích", location: "Hanoi", advice: "không nên gọi"}
	a := newTestAgent(t, model, &fakeRetriever{}, WithWeather(wp))

	result := a.ProcessTurn(context.Background(), TurnInput{Query: "Hà Nội?"})

	// Base answer byte-for-byte, no weather section, no advice call
	assert.Equal(t, "Hà Nội có nhiều di tích", result.FinalAnswer)
	assert.Equal(t, 1, wp.calls)
	assert.Equal(t, 0, model.adviceCalls)
}

func TestProcessTurn_FullWeatherEnrichment(t *testing.T) {
	wp := &fakeWeather{report: &weather.Report{
		Name: "Hanoi", Country: "VN", TempC: 28, FeelsLikeC: 31,
		HumidityPct: 78, Description: "mây rải rác", WindSpeed: 3.6,
	}}
	model := &fakeModel{
		answer:   "Hà Nội có nhiều di tích",
		location: "Hanoi",
		advice:   "Nên mang áo mỏng và uống đủ nước.",
	}
	a := newTestAgent(t, model, &fakeRetriever{}, WithWeather(wp))

	result := a.ProcessTurn(context.Background(), TurnInput{Query: "Hà Nội?"})

	parts := strings.Split(result.FinalAnswer, "\n\n")
	require.Len(t, parts, 3)
	assert.Equal(t, "Hà Nội có nhiều di tích", parts[0])
	assert.Contains(t, parts[1], "Thời tiết tại Hanoi (VN)")
	assert.Equal(t, "Nên mang áo mỏng và uống đủ nước.", parts[2])
	assert.Equal(t, 1, model.adviceCalls)
}

func TestProcessTurn_AdviceFailureKeepsWeatherBlock(t *testing.T) {
	wp := &fakeWeather{report: &weather.Report{Name: "Hanoi", Country: "VN"}}
	model := &fakeModel{
		answer:    "đáp",
		location:  "Hanoi",
		adviceErr: errors.New("quota"),
	}
	a := newTestAgent(t, model, &fakeRetriever{}, WithWeather(wp))

	result := a.ProcessTurn(context.Background(), TurnInput{Query: "Hà Nội?"})

	assert.True(t, strings.HasPrefix(result.FinalAnswer, "đáp\n\n🌤️ Thời tiết tại Hanoi"))
	assert.Equal(t, result.FinalAnswer, "đáp\n\n"+wp.report.Format())
}

func TestNormalizeLocation(t *testing.T) {
	negatives := []string{
		"", "none", "N/A", "Không có", "không tìm thấy", "KHÔNG RÕ",
		`"none"`, "  n/a  ", "'Không có'",
	}
	for _, raw := range negatives {
		assert.Equal(t, "", normalizeLocation(raw), "raw=%q", raw)
	}

	assert.Equal(t, "Hanoi", normalizeLocation(` "Hanoi" `))
	assert.Equal(t, "Da Nang", normalizeLocation("Da Nang"))
}
