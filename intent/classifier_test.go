package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		{"Hello there", Chitchat},
		{"hi", Chitchat},
		{"thanks a lot", Chitchat},
		{"مرحبا", Chitchat},
		{"شكرا جزيلا", Chitchat},
		// Chitchat wins over question words by rule order.
		{"what can you do", Chitchat},
		{"who are you exactly", Chitchat},
		{"what is my balance", Action},
		{"transfer 100 to savings", Action},
		{"show me my statement", Action},
		{"what are the wire transfer fees", Action}, // "transfer" hits the action set first
		{"how do I open an account", Question},
		{"explain overdraft policy", Question},
		// Default when nothing matches.
		{"overdraft", Question},
	}
	for _, tt := range tests {
		if got := Classify(tt.query); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.query, got, tt.want)
		}
	}
}
