//go:generate mockgen -source=../product_repository.go -destination=./mock_product_repository.go -package=mocks
//go:generate mockgen -source=../order_repository.go   -destination=./mock_order_repository.go   -package=mocks
//go:generate mockgen -source=../directory.go          -destination=./mock_directory.go          -package=mocks
//go:generate mockgen -source=../event_publisher.go    -destination=./mock_event_publisher.go    -package=mocks
//go:generate mockgen -source=../services.go           -destination=./mock_services.go           -package=mocks
//go:generate mockgen -source=../token_decoder.go     -destination=./mock_token_decoder.go     -package=mocks
//go:generate mockgen -source=../validator.go         -destination=./mock_validator.go         -package=mocks
//go:generate mockgen -source=../message_consumer.go   -destination=./mock_message_consumer.go   -package=mocks

package mocks
