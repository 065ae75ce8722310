// Package sandbox собирает из снимка сайта (разметка + стили + скрипты)
// один самодостаточный документ, пригодный для загрузки в изолированный
// render surface.
//
// Сборка — чистая трансформация без побочных эффектов: Build идемпотентен
// и детерминирован. Вся работа с сетью и рендерингом остаётся за пакетом
// surface.
package sandbox
