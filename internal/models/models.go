package models

import "time"

type UserSession struct {
	LoginID    string    `db:"login_id"`
	UserName   string    `db:"user_name"`
	StudentID  string    `db:"student_id"`
	Branch     string    `db:"branch"`
	IsLoggedIn bool      `db:"is_logged_in"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type NotificationRead struct {
	LoginID        string    `db:"login_id"`
	NotificationID string    `db:"notification_id"`
	ReadAt         time.Time `db:"read_at"`
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	ProcessRSSBytes   int64     `db:"process_rss_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
