// Package cpu implements the processor and assembler for the E20 system.
//
// The processor is a 16-bit word machine: a program counter, eight
// general-purpose registers ($0-$7, with $7 conventionally used as the
// link register), and 2^15 words of memory. Execution is a sequential
// fetch-decode-execute loop; the machine halts when a jump instruction
// targets its own address.
//
// The assembler provides the E20 assembly language, supporting labels,
// equates, .fill directives, and compile-time expression evaluation.
package cpu
