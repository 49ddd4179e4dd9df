package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/vietravel-ai/travelbot/history"
	"github.com/vietravel-ai/travelbot/llm"
)

// classify decides between the text and image paths. On image turns the
// vision capability turns the image into a textual query; a failed
// analysis falls back to a fixed phrase and the text path so the rest of
// the pipeline proceeds uniformly.
func (a *Agent) classify(ctx context.Context, st *pipelineState) {
	if len(st.imagePayload) == 0 {
		st.queryKind = QueryText
		return
	}

	dataURI := llm.ImageDataURI(st.imagePayload)
	derived, err := a.model.Vision(ctx, visionSystemPrompt, visionUserPrompt, dataURI)
	if err != nil || strings.TrimSpace(derived) == "" {
		a.logger.Warn("image analysis failed, continuing as text: %v", err)
		st.query = imageFallback
		st.queryKind = QueryText
		return
	}

	st.query = derived
	st.queryKind = QueryImage
}

// retrieve looks up the top-K most similar knowledge-base passages.
// A retrieval failure degrades quality, never aborts the turn.
func (a *Agent) retrieve(ctx context.Context, st *pipelineState) {
	docs, err := a.retriever.Retrieve(ctx, st.query)
	if err != nil {
		a.logger.Warn("passage retrieval failed: %v", err)
		st.retrievedPassages = []string{}
		return
	}

	passages := make([]string, len(docs))
	for i, doc := range docs {
		passages[i] = doc.Content
	}
	st.retrievedPassages = passages
}

// generate produces the primary answer grounded on the retrieved
// passages and the conversation so far. On success the exchange is
// appended to the history and the bound enforced; on failure the answer
// becomes an apology and the history is left untouched for this turn.
func (a *Agent) generate(ctx context.Context, st *pipelineState) {
	contextBlock := noContextSentinel
	if len(st.retrievedPassages) > 0 {
		contextBlock = strings.Join(st.retrievedPassages, "\n")
	}
	systemPrompt := personaPrompt + contextBlock

	messages := make([]llm.Message, 0, len(st.chatHistory)+1)
	for _, turn := range st.chatHistory {
		role := llm.RoleUser
		if turn.Role == history.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: "Câu hỏi: " + st.query})

	answer, err := a.model.Chat(ctx, systemPrompt, messages)
	if err != nil {
		a.logger.Error("answer generation failed: %v", err)
		st.baseAnswer = fmt.Sprintf(apologyFormat, err)
		return
	}

	st.baseAnswer = FormatMapLinks(answer)
	st.chatHistory = history.Append(st.chatHistory,
		history.Turn{Role: history.RoleUser, Content: st.query},
		history.Turn{Role: history.RoleAssistant, Content: st.baseAnswer},
	)
}

// extractLocation asks the model for the single dominant place named in
// the answer. Negative or failed extractions normalize to "".
func (a *Agent) extractLocation(ctx context.Context, st *pipelineState) {
	raw, err := a.model.Chat(ctx, locationSystemPrompt, []llm.Message{
		{Role: llm.RoleUser, Content: st.baseAnswer},
	})
	if err != nil {
		a.logger.Warn("location extraction failed: %v", err)
		st.extractedLocation = ""
		return
	}
	st.extractedLocation = normalizeLocation(raw)
}

// enrichWeather fetches current conditions for the extracted location
// and asks for short situational advice. Both the lookup and the advice
// call may degrade to empty strings without touching the base answer;
// with no location or no provider configured, no network call is made.
func (a *Agent) enrichWeather(ctx context.Context, st *pipelineState) {
	if st.extractedLocation == "" || a.weather == nil {
		st.weatherBlock = ""
		return
	}

	report, err := a.weather.Current(ctx, st.extractedLocation)
	if err != nil {
		a.logger.Warn("weather lookup for %q failed: %v", st.extractedLocation, err)
		st.weatherBlock = ""
		return
	}
	st.weatherBlock = report.Format()

	advice, err := a.model.Chat(ctx, adviceSystemPrompt, []llm.Message{
		{Role: llm.RoleUser, Content: st.weatherBlock},
	})
	if err != nil {
		a.logger.Warn("weather advice failed: %v", err)
		st.advice = ""
		return
	}
	st.advice = advice
}

// compose concatenates the base answer with the optional weather block
// and advice. Terminal step, pure string work.
func (a *Agent) compose(_ context.Context, st *pipelineState) {
	if st.weatherBlock == "" {
		st.finalAnswer = st.baseAnswer
		return
	}

	st.finalAnswer = st.baseAnswer + "\n\n" + st.weatherBlock
	if st.advice != "" {
		st.finalAnswer += "\n\n" + st.advice
	}
}
