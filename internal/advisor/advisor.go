package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"agency-backend/internal/finance"
	"agency-backend/internal/logger"
	"agency-backend/internal/models"
)

// fallbackAdvice is returned whenever the model is unreachable or not
// configured. The dashboard shows it verbatim.
const fallbackAdvice = "عذراً، لا يمكن الحصول على النصيحة المالية حالياً. يرجى المحاولة مرة أخرى لاحقاً."

const systemPrompt = "أنت مستشار مالي لوكالة تسويق رقمي صغيرة في العراق. " +
	"قدم نصيحة مالية عملية وموجزة بالعربية بناءً على الأرقام المعطاة، في ثلاث نقاط كحد أقصى."

// Advisor turns the financial overview into a short piece of advice using a
// chat completion model.
type Advisor struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// New returns a nil-client Advisor when no API key is configured; Analyze
// then always answers with the fallback text.
func New(apiKey, model string) *Advisor {
	a := &Advisor{model: model, log: logger.WithComponent("advisor")}
	if apiKey != "" {
		a.client = openai.NewClient(apiKey)
	}
	return a
}

// Analyze builds a prompt from the current figures and asks the model for
// advice. Every failure path degrades to the static fallback; the dashboard
// never sees an error from here.
func (a *Advisor) Analyze(ctx context.Context, data models.AppData) string {
	if a.client == nil {
		return fallbackAdvice
	}

	o := finance.SummarizeAll(data)
	prompt := fmt.Sprintf(
		"الوضع المالي الحالي (جميع المبالغ بالدينار العراقي):\n"+
			"- إجمالي المقبوضات: %.0f\n"+
			"- المصاريف التشغيلية: %.0f\n"+
			"- سحوبات المالك: %.0f\n"+
			"- الرصيد الحالي: %.0f\n"+
			"- قيمة عروض الأسعار المقبولة: %.0f\n"+
			"- عدد عروض الأسعار المعلقة: %d\n"+
			"ما هي نصيحتك المالية؟",
		o.Receipts, o.OperatingExpenses, o.OwnerWithdrawals, o.Balance,
		o.AcceptedQuotesTotal, o.PendingQuotes,
	)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: 400,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("advice request failed")
		return fallbackAdvice
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return fallbackAdvice
	}
	return resp.Choices[0].Message.Content
}
