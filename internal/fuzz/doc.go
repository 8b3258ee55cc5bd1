// Package fuzztests houses Go fuzz harnesses for the document pipeline
// (bytes -> astio -> sema -> opt -> codegen). They guard against panics
// and hangs on arbitrary input.
//
// Назначение: скармливать байты декодеру AST и прогонять результат через
// анализ, оптимизацию и генерацию.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
