package models

// Composition is one element/percentage line of an experiment
type Composition struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	ExperimentID uint    `json:"experimentId" gorm:"not null;index"`
	Element      string  `json:"element" gorm:"size:50;not null"`
	Percentage   float64 `json:"percentage" gorm:"not null"`
}
