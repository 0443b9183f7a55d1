package dictionary

// Default returns the built-in marketing dictionaries. They are a caller
// convenience for the CLI layer; the compiler accepts any well-formed
// dictionary and nothing downstream depends on these categories.
func Default() *Dictionary {
	return New([]Entry{
		{
			Name: "urgency_marketing",
			Phrases: []string{
				"limited",
				"limited time",
				"limited run",
				"limited edition",
				"order now",
				"last chance",
				"hurry",
				"while supplies last",
				"before they're gone",
				"selling out",
				"selling fast",
				"act now",
				"don't wait",
				"today only",
				"expires soon",
				"final hours",
				"almost gone",
			},
		},
		{
			Name: "exclusive_marketing",
			Phrases: []string{
				"exclusive",
				"exclusively",
				"exclusive offer",
				"exclusive deal",
				"members only",
				"vip",
				"special access",
				"invitation only",
				"premium",
				"privileged",
				"limited access",
				"select customers",
				"insider",
				"private sale",
				"early access",
			},
		},
	})
}
