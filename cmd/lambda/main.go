package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/mindcare/wellness-api/internal/container"
)

func main() {
	c := container.New()
	adapter := chiadapter.NewV2(c.Router())
	lambda.Start(adapter.ProxyWithContextV2)
}
