package nl2sql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type GroqConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

type GroqTranslator struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

func NewGroqTranslator(cfg GroqConfig) (*GroqTranslator, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "deepseek-r1-distill-llama-70b"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 100
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GroqTranslator{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

func (t *GroqTranslator) Translate(ctx context.Context, req Request) (Result, error) {
	payload := map[string]any{
		"model": t.model,
		"messages": []map[string]string{
			{"role": "user", "content": buildPrompt(req.NaturalLanguage)},
		},
		"temperature": t.temperature,
		"max_tokens":  t.maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("marshal chat payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/openai/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("request chat completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	rawRespBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read chat response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return Result{}, fmt.Errorf("chat completion failed status=%d body=%s", resp.StatusCode, string(rawRespBody))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(rawRespBody, &parsed); err != nil {
		return Result{}, fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Result{}, fmt.Errorf("empty chat completion choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return Result{}, fmt.Errorf("model returned empty response")
	}
	return Result{
		RawResponse: content,
		Provider:    "groq",
		Model:       t.model,
	}, nil
}

const schemaInfo = `Table: employees
Columns:
- id (SERIAL PRIMARY KEY)
- name (TEXT) - Employee name
- experience_years (INT) - Years of experience
- skills (TEXT) - Comma-separated skills like 'Python, SQL', 'Java, React'

Sample data:
- Alice, 6 years, 'Python, SQL'
- Bob, 3 years, 'Java, React'
- Charlie, 7 years, 'Python, JavaScript, AWS'`

func buildPrompt(naturalLanguage string) string {
	return fmt.Sprintf(`You are a SQL query generator. Convert the natural language query to a PostgreSQL SELECT statement.

Database Schema:
%s

Natural Language Query: %q

CRITICAL RULES:
1. ONLY return a SELECT statement - no explanations, no reasoning, no extra text
2. Use ILIKE for case-insensitive text matching on skills column
3. Skills are stored as comma-separated values like 'Python, SQL' or 'Java, React'
4. BE PRECISE with skill matching - avoid partial matches that cause confusion
5. For Java (NOT JavaScript): Use pattern that matches 'Java' but NOT 'JavaScript'
6. Start with SELECT and end with semicolon
7. Do not include any text before or after the SQL query

IMPORTANT SKILL DISTINCTIONS:
- "Java" should match "Java" but NOT "JavaScript"
- "JavaScript" should match "JavaScript" only
- Use word boundaries or comma separation for precision

Examples:
Query: "employees with more than 5 years experience"
Answer: SELECT * FROM employees WHERE experience_years > 5;

Query: "employees who know Python"
Answer: SELECT * FROM employees WHERE skills ILIKE '%%Python%%';

Query: "employees who know Java" (NOT JavaScript)
Answer: SELECT * FROM employees WHERE (skills ILIKE '%%Java,%%' OR skills ILIKE '%%Java %%' OR skills LIKE '%%Java' OR skills LIKE 'Java%%');

Query: "employees who know JavaScript"
Answer: SELECT * FROM employees WHERE skills ILIKE '%%JavaScript%%';

Query: "list all employees with SQL skills"
Answer: SELECT * FROM employees WHERE skills ILIKE '%%SQL%%';

Query: "show all employees"
Answer: SELECT * FROM employees;

Now convert this query: %q`, schemaInfo, naturalLanguage, naturalLanguage)
}
