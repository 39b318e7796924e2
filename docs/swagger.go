// Package docs Skate Scout API.
//
// Подбор маршрутов для скейта и самоката по кампусу поверх провайдера карт.
// Сгенерированная спецификация OpenAPI лежит в docs/swagger (swag init -g cmd/api/main.go -o docs/swagger).
//
// Основные возможности:
// - Лучшие маршруты по пяти критериям (время, повороты, гладкость, баланс, один поворот)
// - Пользовательские отчёты о покрытии, загруженности и перекрытиях
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
