package cmd

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderEventsTopic  string
	BroadcastCronSchedule  string
	BroadcastStaleAfterMin string
	BroadcastLimit         string
}
