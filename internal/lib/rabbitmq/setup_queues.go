package rabbitmq

const (
	// NotificationsExchange — direct-обменник всех уведомлений.
	NotificationsExchange = "notifications"
	// ExpiringRoutingKey — ключ сообщений об истекающих абонементах.
	ExpiringRoutingKey = "expiring"
	// ExpiringQueue — очередь, которую читает сервис рассылки.
	ExpiringQueue = "notification.expiring"
)

// QueueConfig — очередь и ключ, с которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ExpiringQueue, RoutingKey: ExpiringRoutingKey},
	}
}
