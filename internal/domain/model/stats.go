package model

// DailyCount число регистраций за календарный день (UTC)
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ScoreCount число результатов с данным баллом
type ScoreCount struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

// CorrectIncorrect суммарное число верных и неверных ответов
type CorrectIncorrect struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// ResultStats сводка по всем результатам
type ResultStats struct {
	Count             int              `json:"count"`
	Passed            int              `json:"passed"`
	AverageScore      float64          `json:"averageScore"`
	MinScore          int              `json:"minScore"`
	MaxScore          int              `json:"maxScore"`
	ScoreDistribution []ScoreCount     `json:"scoreDistribution"`
	CorrectIncorrect  CorrectIncorrect `json:"correctIncorrect"`
}
