package models

import "time"

// MetricsSummary сводка для панели администратора за период [From, To]
// с процентным изменением к предыдущему периоду той же длины.
type MetricsSummary struct {
	From                time.Time `json:"from"`
	To                  time.Time `json:"to"`
	NewSubscriptions    int       `json:"new_subscriptions"`
	MRR                 int64     `json:"mrr"`
	ActiveSubscriptions int       `json:"active_subscriptions"`
	Reactivations       int       `json:"reactivations"`
	NewChange           float64   `json:"new_change"`
	MRRChange           float64   `json:"mrr_change"`
	ActiveChange        float64   `json:"active_change"`
	ReactivationsChange float64   `json:"reactivations_change"`
}

// RevenuePoint точка графика выручки: MRR на конец месяца.
type RevenuePoint struct {
	Month string `json:"month"` // формат 2006-01
	MRR   int64  `json:"mrr"`
}

// GrowthPoint точка графика роста: количества за один день,
// границы дней не пересекаются ([day, day+1)).
type GrowthPoint struct {
	Date      string `json:"date"` // формат 2006-01-02
	Active    int    `json:"active"`
	New       int    `json:"new"`
	Cancelled int    `json:"cancelled"`
}

// PlanDistribution количество активных подписок по одному плану,
// имя и цвет плана передаются для отображения.
type PlanDistribution struct {
	PlanID int    `json:"plan_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Count  int    `json:"count"`
}
