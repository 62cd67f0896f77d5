package interfaces

//go:generate mockgen -source=broker-interface.go -destination=mocks/mock_broker.go -package=mocks

type ConsumerHandler interface {
	HandleMessage(message string) error
}

type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}
