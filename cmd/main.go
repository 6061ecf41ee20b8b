package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"qpay-checkout-api/internal/config"
	"qpay-checkout-api/internal/dal"
	"qpay-checkout-api/internal/handler"
	"qpay-checkout-api/internal/idgen"
	"qpay-checkout-api/internal/middleware"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.Init(1)

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover(), middleware.Trace(), middleware.RequestLogger())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	v1 := r.Group("/api/v1")
	{
		ch := handler.NewCheckoutHandler()
		v1.POST("/checkout/pay", ch.Pay)
		v1.POST("/checkout/payNotify", ch.PayNotify)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
