package docs

import "github.com/swaggo/swag"

// @title           Taskboard API
// @version         1.0
// @description     Kanban-style task manager: boards own ordered lists, lists own ordered cards

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration and login

// @tag.name Boards
// @tag.description Board management operations

// @tag.name Lists
// @tag.description List management and reordering

// @tag.name Cards
// @tag.description Card management, moves and reordering

// Register swagger info
func SwaggerInfo() *swag.Spec {
	spec, _ := swag.GetSwagger(swag.Name).(*swag.Spec)
	return spec
}
