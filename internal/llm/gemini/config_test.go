package gemini

import "testing"

func TestNewConfig(t *testing.T) {
	cases := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		model       string
		temperature float32
	}{
		{
			name:        "defaults",
			env:         map[string]string{"GEMINI_API_KEY": "key"},
			model:       defaultModel,
			temperature: defaultTemperature,
		},
		{
			name:        "overrides",
			env:         map[string]string{"GEMINI_API_KEY": "key", "GEMINI_MODEL": " custom ", "GEMINI_TEMPERATURE": "1.5"},
			model:       "custom",
			temperature: 1.5,
		},
		{name: "missing key", env: map[string]string{}, wantErr: true},
		{name: "bad temperature", env: map[string]string{"GEMINI_API_KEY": "key", "GEMINI_TEMPERATURE": "hot"}, wantErr: true},
		{name: "temperature out of range", env: map[string]string{"GEMINI_API_KEY": "key", "GEMINI_TEMPERATURE": "3"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_TEMPERATURE"} {
				t.Setenv(key, tc.env[key])
			}

			cfg, err := NewConfig()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConfig returned error: %v", err)
			}
			if cfg.APIKey != "key" || cfg.Model != tc.model || cfg.Temperature != tc.temperature {
				t.Fatalf("unexpected config values: %+v", cfg)
			}
		})
	}
}
