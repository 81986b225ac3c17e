package template

// Samples returns the built-in templates loaded when SEED_TEMPLATES is set.
func Samples() []Template {
	listenTF := AllowedFields{Audio: true, Images: true, Options: true, Explanation: true}
	listenMCQ := AllowedFields{Audio: true, Images: true, Options: true, Explanation: true}
	readMCQ := AllowedFields{Text: true, Options: true, Explanation: true}

	return []Template{
		{
			ID:        "hsk1-standard",
			Name:      "HSK 1 Mock Test",
			ExamType:  "hsk",
			Level:     "1",
			Published: true,
			Structure: &Structure{Sections: []Section{
				{
					ID: "listening", Name: "Listening", Order: 1, TimeLimitMin: 15, MaxScore: 100, TotalQuestions: 20,
					Parts: []Part{
						{PartNo: 1, Title: "Picture true/false", QuestionType: TypeTrueFalse, QuestionCount: 5, InputType: InputTypeAudio, AllowedFields: listenTF},
						{PartNo: 2, Title: "Choose the picture", QuestionType: TypeMCQImage, QuestionCount: 5, OptionsCount: 3, InputType: InputTypeAudio, AllowedFields: listenMCQ},
						{PartNo: 3, Title: "Dialogue and picture", QuestionType: TypeMatchImage, QuestionCount: 5, InputType: InputTypeAudio, AllowedFields: listenMCQ},
						{PartNo: 4, Title: "Short dialogue", QuestionType: TypeMCQText, QuestionCount: 5, OptionsCount: 3, InputType: InputTypeAudio, AllowedFields: AllowedFields{Audio: true, Options: true, Explanation: true}},
					},
				},
				{
					ID: "reading", Name: "Reading", Order: 2, TimeLimitMin: 17, MaxScore: 100, TotalQuestions: 20,
					Parts: []Part{
						{PartNo: 1, Title: "Word and picture", QuestionType: TypeTrueFalse, QuestionCount: 5, InputType: "image", AllowedFields: AllowedFields{Text: true, Images: true, Options: true}},
						{PartNo: 2, Title: "Sentence and picture", QuestionType: TypeMatchImage, QuestionCount: 5, InputType: "image", AllowedFields: AllowedFields{Text: true, Images: true, Options: true}},
						{PartNo: 3, Title: "Question and answer", QuestionType: TypePair, QuestionCount: 5, InputType: "text", AllowedFields: readMCQ},
						{PartNo: 4, Title: "Fill in the blank", QuestionType: TypeFillBlank, QuestionCount: 5, OptionsCount: 6, InputType: "text", AllowedFields: readMCQ},
					},
				},
			}},
		},
		{
			ID:        "hskk-elementary",
			Name:      "HSKK Elementary Mock Test",
			ExamType:  "hskk",
			Level:     "elementary",
			Published: true,
			Structure: &Structure{Sections: []Section{
				{
					ID: "speaking", Name: "Speaking", Order: 1, TimeLimitMin: 17, MaxScore: 100, TotalQuestions: 27,
					Parts: []Part{
						{PartNo: 1, Title: "Repeat after the recording", QuestionType: TypeEssay, QuestionCount: 15, InputType: InputTypeAudio, AllowedFields: AllowedFields{Text: true, Audio: true}},
						{PartNo: 2, Title: "Answer briefly", QuestionType: TypeEssay, QuestionCount: 10, InputType: InputTypeAudio, AllowedFields: AllowedFields{Text: true, Audio: true}},
						{PartNo: 3, Title: "Answer the question", QuestionType: TypeEssay, QuestionCount: 2, InputType: "text", AllowedFields: AllowedFields{Text: true, Explanation: true}},
					},
				},
			}},
		},
	}
}
