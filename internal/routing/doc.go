// Package routing - оценка и выбор маршрутов для самоката/скейта.
//
// Пакет не ходит в сеть: на вход подаются маршруты провайдера, отчёты
// пользователей и уже полученный профиль высот. Сетевой fan-out живёт
// в usecase.RouteUseCase.
package routing
