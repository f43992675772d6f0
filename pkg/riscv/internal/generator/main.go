package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/consensys/bavard"
)

const copyrightHolder = "Consensys Software Inc."

// mnemonics lists every supported operation in declaration order.  The
// unknown tag comes first so that it is the zero value of Op.
var mnemonics = []string{
	"unknown",
	"add", "sub", "sll", "slt", "sltu", "xor", "srl", "sra", "or", "and",
	"mul", "mulh", "mulhsu", "mulhu", "div", "divu", "rem", "remu",
	"addi", "slti", "sltiu", "xori", "ori", "andi", "slli", "srli", "srai",
	"lb", "lh", "lw", "lbu", "lhu", "sb", "sh", "sw",
	"beq", "bne", "blt", "bge", "bltu", "bgeu",
	"jal", "jalr", "lui", "auipc", "ecall", "ebreak",
}

// registers lists the conventional ABI register names in index order.
var registers = []string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

type opData struct {
	// Const is the Go constant name, e.g. "OpAdd".
	Const string
	// Name is the assembler mnemonic, e.g. "add".
	Name string
}

type isaData struct {
	// Ops lists every operation in declaration order.
	Ops []opData
	// Regs lists the ABI register names in index order.
	Regs []string
}

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "go-tracevm")
	//
	data := isaData{Regs: registers}
	for _, m := range mnemonics {
		data.Ops = append(data.Ops, opData{Const: constName(m), Name: m})
	}
	//
	assertNoError(bgen.Generate(data, "riscv", "templates",
		bavard.Entry{
			File:      "../../abi_gen.go",
			Templates: []string{"abi.go.tmpl"},
		},
	), "generating ISA tables")

	// run gofmt on the generated code
	runCmd("gofmt", "-w", "../../abi_gen.go")
}

// constName derives the Go constant name of a mnemonic, e.g. "add" becomes
// "OpAdd".
func constName(mnemonic string) string {
	return "Op" + strings.ToUpper(mnemonic[:1]) + mnemonic[1:]
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run(), "running %s", name)
}

func assertNoError(err error, format string, args ...any) {
	if err != nil {
		fmt.Printf(format+": %v\n", append(args, err)...)
		os.Exit(1)
	}
}
