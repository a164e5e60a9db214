package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort    string
	MetricsPort    string
	Environment    string
	MongoDBConfig  MongoDBConfig
	KafkaConfig    KafkaConfig
	SMTPConfig     SMTPConfig
	MidtransConfig MidtransConfig
	TracingConfig  TracingConfig
	JWTSecret      string
	FrontendHost   string
	PaymentExpiry  int
}

type MongoDBConfig struct {
	URI    string
	DBName string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type MidtransConfig struct {
	ServerKey string
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	brokerPartition, _ := strconv.Atoi(os.Getenv("BROKER_PARTITION"))

	paymentExpiry, err := strconv.Atoi(os.Getenv("PAYMENT_EXPIRY_MINUTES"))
	if err != nil || paymentExpiry <= 0 {
		paymentExpiry = 60
	}

	conf := Config{
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		Environment: os.Getenv("ENVIRONMENT"),
		MongoDBConfig: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: os.Getenv("MONGODB_DB_NAME"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress:   os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:     os.Getenv("BROKER_TOPIC"),
			BrokerPartition: brokerPartition,
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		MidtransConfig: MidtransConfig{
			ServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		JWTSecret:     os.Getenv("JWT_SECRET"),
		FrontendHost:  os.Getenv("FRONTEND_HOST"),
		PaymentExpiry: paymentExpiry,
	}

	return &conf
}
