package domain

// NotificationQuery filters /notifications. Zero values are not sent;
// IsRead is a pointer so "unread only" can be expressed.
type NotificationQuery struct {
	Limit            int
	Offset           int
	NotificationType string
	IsRead           *bool
}

type Notification struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	NotificationType string     `json:"notification_type"`
	CropName         *string    `json:"crop_name,omitempty"`
	ActionRequired   bool       `json:"action_required"`
	Priority         string     `json:"priority"`
	DeliveryMethod   string     `json:"delivery_method"`
	DeliveryStatus   string     `json:"delivery_status"`
	ScheduledAt      *Timestamp `json:"scheduled_at,omitempty"`
	SentAt           *Timestamp `json:"sent_at,omitempty"`
	DeliveredAt      *Timestamp `json:"delivered_at,omitempty"`
	IsRead           bool       `json:"is_read"`
	IsAcknowledged   bool       `json:"is_acknowledged"`
	ReadAt           *Timestamp `json:"read_at,omitempty"`
	AcknowledgedAt   *Timestamp `json:"acknowledged_at,omitempty"`
	Language         string     `json:"language"`
	CreatedAt        Timestamp  `json:"created_at"`
}

type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
}

// NotificationPreferences switches delivery channels and topics on or off,
// e.g. {"sms": true, "weather_alerts": false}.
type NotificationPreferences map[string]bool

type PreferencesResponse struct {
	Message     string                  `json:"message"`
	Preferences NotificationPreferences `json:"preferences"`
}
