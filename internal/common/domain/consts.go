package domain

const (
	// TotalWeeks is the average lifespan in weeks (about 90 years).
	TotalWeeks = 4680

	ProgressBarLength = 15

	BirthDateLayout = "02.01.2006"
)

const (
	progressFilled = "█"
	progressEmpty  = "░"
)
