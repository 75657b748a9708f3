package steps

import "testing"

func TestExpandPath(t *testing.T) {
	tc := &testContext{
		subscriptionIDs: map[string]string{
			"Netflix":  "11111111-1111-1111-1111-111111111111",
			"Gym Pass": "22222222-2222-2222-2222-222222222222",
		},
		lastID: "33333333-3333-3333-3333-333333333333",
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "path placeholder",
			input: "/api/v1/subscriptions/{Netflix}",
			want:  "/api/v1/subscriptions/11111111-1111-1111-1111-111111111111",
		},
		{
			name:  "last id placeholder",
			input: "/api/v1/wallet/streams/{last_id}",
			want:  "/api/v1/wallet/streams/33333333-3333-3333-3333-333333333333",
		},
		{
			name:  "placeholder with space",
			input: "/api/v1/subscriptions/{Gym Pass}/toggle",
			want:  "/api/v1/subscriptions/22222222-2222-2222-2222-222222222222/toggle",
		},
		{
			name:  "json body braces left alone",
			input: `{"subscription_id": "{Netflix}", "protocol": "sablier"}`,
			want:  `{"subscription_id": "11111111-1111-1111-1111-111111111111", "protocol": "sablier"}`,
		},
		{
			name:  "unknown name stays literal",
			input: "/api/v1/subscriptions/{Hulu}",
			want:  "/api/v1/subscriptions/{Hulu}",
		},
		{
			name:  "no placeholders",
			input: `{"name": "Netflix", "price": 15.99}`,
			want:  `{"name": "Netflix", "price": 15.99}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tc.expandPath(tt.input); got != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
