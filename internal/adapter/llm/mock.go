package llm

// MockLLM is a canned-response model for tests and offline runs.
type MockLLM struct {
	Response string
	Err      error

	// Prompts records every user prompt received, in call order.
	Prompts []string
	Systems []string
}

func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

func (m *MockLLM) ModelName() string {
	return "mock"
}

func (m *MockLLM) Generate(prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockLLM) GenerateWithSystem(systemPrompt, userPrompt string) (string, error) {
	m.Systems = append(m.Systems, systemPrompt)
	m.Prompts = append(m.Prompts, userPrompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
