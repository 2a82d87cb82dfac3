package gemini

import "interviewprep/api/internal/llm"

func init() {
	llm.RegisterProvider(providerName, func() (llm.Provider, error) {
		cfg, err := NewConfig()
		if err != nil {
			return nil, err
		}
		return NewClient(cfg)
	})
}
