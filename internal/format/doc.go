// Package format renders token trees back to source text.
//
// Назначение: печать результата раскрытия (очищенный enum, compile_error!,
// impl Display) и токенов для отладки. Два режима: Compact: всё в одну
// строку с минимальными пробелами; Pretty: блочная раскладка с отступом
// для многострочных {} групп.
// Не делает: форматирование исходного файла целиком; текст вокруг
// раскрытого элемента драйвер копирует байт в байт.
// Зависимости: internal/token.
package format
