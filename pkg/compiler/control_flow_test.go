package compiler

import (
	"strings"
	"testing"
)

func TestControlFlow_While(t *testing.T) {
	code := compileSource(t, `
main() {
    int i;
    i = 0;
    while (i < 3) {
        i = i + 1;
    }
}`)

	assertContains(t, code, "L0:")
	assertContains(t, code, "cmp ax, 0")
	assertContains(t, code, "je L1")
	assertContains(t, code, "jmp L0")
	assertContains(t, code, "L1:")
}

func TestControlFlow_SiblingLoopsGetFreshLabels(t *testing.T) {
	code := compileSource(t, `
main() {
    int i;
    i = 0;
    while (i < 3) { i = i + 1; }
    while (i < 3) { i = i + 1; }
}`)

	// Identical loops must not share labels.
	if n := strings.Count(code, "L0:"); n != 1 {
		t.Errorf("Expected exactly one L0 label, got %d.\nCode:\n%s", n, code)
	}
	assertContains(t, code, "jmp L0")
	assertContains(t, code, "L4:")
	assertContains(t, code, "jmp L4")
	assertContains(t, code, "je L5")
}

func TestControlFlow_DoWhile(t *testing.T) {
	code := compileSource(t, `
main() {
    int i;
    i = 0;
    do {
        i++;
    } while (i < 3);
}`)

	// The body label precedes the condition; the loop jumps back on true.
	assertOrder(t, code, "L0:", "L1:")
	assertContains(t, code, "jne L0")
}

func TestControlFlow_ForBreakContinue(t *testing.T) {
	code := compileSource(t, `
main() {
    for (int i = 0; i < 10; i++) {
        if (i > 5) break;
        continue;
    }
}`)

	// cond=L0, post=L1, end=L2: break leaves, continue reruns the iterator.
	assertContains(t, code, "je L2")
	assertContains(t, code, "jmp L2")
	assertContains(t, code, "jmp L1")
	assertContains(t, code, "L1:")
	assertContains(t, code, "jmp L0")
}

func TestControlFlow_IfElse(t *testing.T) {
	code := compileSource(t, `
main() {
    int x;
    if (1 > 0) {
        x = 1;
    } else {
        x = 2;
    }
}`)

	assertContains(t, code, "je L3")
	assertContains(t, code, "jmp L0")
	assertContains(t, code, "L3:")
	assertContains(t, code, "L0:")
	assertOrder(t, code, "mov ax, 1", "L3:")
	assertOrder(t, code, "L3:", "mov ax, 2")
}

func TestControlFlow_IfWithoutElse(t *testing.T) {
	code := compileSource(t, `
main() {
    int x;
    x = 0;
    if (x > 0) x = 1;
}`)

	assertContains(t, code, "je L0")
	assertContains(t, code, "L0:")
}

func TestControlFlow_NestedLoopBreak(t *testing.T) {
	code := compileSource(t, `
main() {
    int i;
    int j;
    i = 0;
    while (i < 3) {
        j = 0;
        while (j < 3) {
            break;
        }
        i++;
    }
}`)

	// outer: start=L0 end=L1; inner: start=L4 end=L5.
	// break targets the innermost loop.
	assertContains(t, code, "jmp L5")
	assertContains(t, code, "jmp L4")
	assertContains(t, code, "jmp L0")
}

func TestControlFlow_WhileConditionReevaluated(t *testing.T) {
	code := compileSource(t, `
main() {
    int i;
    i = 0;
    while (i < 3) { i++; }
}`)

	// The condition sits at the loop head, after the back-edge target.
	idx := strings.Index(code, "L0:")
	if idx < 0 {
		t.Fatalf("missing loop head label.\nCode:\n%s", code)
	}
	assertContains(t, code[idx:], "cmp ax, bx")
}
