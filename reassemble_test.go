package tsreassemble

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/tsreassemble/internal/ast"
	"github.com/jward/tsreassemble/internal/parse"
	"github.com/jward/tsreassemble/internal/printer"
)

func parseSource(t *testing.T, path, src string) *SourceFile {
	t.Helper()
	file, err := parse.New().Parse(context.Background(), path, []byte(src))
	require.NoError(t, err)
	return file
}

func reassembleSources(t *testing.T, compiled, declaration string) *Result {
	t.Helper()
	res, err := New().Reassemble(Options{
		Compiled:    parseSource(t, "foo.js", compiled),
		Declaration: parseSource(t, "foo.d.ts", declaration),
	})
	require.NoError(t, err)
	return res
}

func TestReassemble_PropertyType(t *testing.T) {
	res := reassembleSources(t,
		"export class A {\n  x;\n}\n",
		"export declare class A {\n  x: string;\n}\n",
	)
	assert.Contains(t, res.Content, "export class A {\n    x: string;\n}")
	assert.NotContains(t, res.Content, "declare")

	class := res.File.Statements[0].(*ast.ClassDeclaration)
	prop := class.Members[0].(*ast.PropertyDeclaration)
	assert.Equal(t, "string", printer.Type(prop.Type))
	assert.Equal(t, Stats{Statements: 1, Matched: 1}, res.Stats)
}

func TestReassemble_PositionalParameters(t *testing.T) {
	res := reassembleSources(t,
		"export function f(a, b) { return a; }\n",
		"export declare function f(x: number, y: string): number;\n",
	)
	assert.Contains(t, res.Content, "export function f(a: number, b: string): number { return a; }")
}

func TestReassemble_ModifierUnion(t *testing.T) {
	res, err := New().Reassemble(Options{
		Compiled:    parseSource(t, "a.ts", "class A {\n  public x = 1;\n}\n"),
		Declaration: parseSource(t, "a.d.ts", "declare class A {\n  public readonly x: number;\n}\n"),
	})
	require.NoError(t, err)
	assert.Contains(t, res.Content, "public readonly x: number = 1;")
	assert.Equal(t, 1, strings.Count(res.Content, "public"))
}

func TestReassemble_NoMatchPassthrough(t *testing.T) {
	res := reassembleSources(t,
		"import { b } from \"./b\";\nexport class A {\n  helper() { return b; }\n}\nexport function g() {}\n",
		"export declare class A {\n  other(): void;\n}\n",
	)
	assert.Contains(t, res.Content, "import { b } from \"./b\";")
	assert.Contains(t, res.Content, "    helper() { return b; }")
	assert.Contains(t, res.Content, "export function g() {}")
	assert.Equal(t, Stats{Statements: 3, Matched: 1, Unmatched: 1}, res.Stats)

	var codes []DiagnosticCode
	for _, d := range res.Diagnostics {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, CodeUnmatched)
}

func TestReassemble_Idempotent(t *testing.T) {
	decl := parseSource(t, "foo.d.ts", "export declare class A<T> implements B {\n  m(a: T, b?: number): void;\n}\n")
	r := New()

	first, err := r.Reassemble(Options{
		Compiled:    parseSource(t, "foo.js", "export class A {\n  m(a, b) {}\n}\n"),
		Declaration: decl,
	})
	require.NoError(t, err)
	second, err := r.Reassemble(Options{Compiled: first.File, Declaration: decl})
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Contains(t, first.Content, "export class A<T> implements B {\n    m(a: T, b?: number): void {}\n}")
}

func TestReassemble_DeclarationUnchanged(t *testing.T) {
	decl := parseSource(t, "foo.d.ts", "export declare class A {\n  m(a: string[]): void;\n}\n")
	before := printer.New().Print(decl)

	res, err := New().Reassemble(Options{
		Compiled:    parseSource(t, "foo.js", "export class A {\n  m(a) {}\n}\n"),
		Declaration: decl,
	})
	require.NoError(t, err)
	assert.Equal(t, before, printer.New().Print(decl))

	out := res.File.Statements[0].(*ast.ClassDeclaration).Members[0].(*ast.MethodDeclaration)
	in := decl.Statements[0].(*ast.ClassDeclaration).Members[0].(*ast.MethodDeclaration)
	assert.NotSame(t, in.Parameters[0].Type, out.Parameters[0].Type)
}

func TestReassemble_NodeList(t *testing.T) {
	compiled := parseSource(t, "foo.js", "const a = 1;\n")
	res, err := New().Reassemble(Options{
		Compiled:    NodeList{FileName: "foo.js", Nodes: compiled.Statements},
		Declaration: NodeList{FileName: "foo.d.ts", Nodes: parseSource(t, "foo.d.ts", "declare const a: 1;\n").Statements},
	})
	require.NoError(t, err)
	assert.Equal(t, "foo.js", res.File.FileName)
	assert.Equal(t, "const a: 1 = 1;\n", res.Content)
}

func TestReassemble_MalformedInput(t *testing.T) {
	decl := parseSource(t, "foo.d.ts", "declare const a: number;\n")
	tests := []struct {
		name string
		opts Options
	}{
		{"nil compiled", Options{Declaration: decl}},
		{"nil declaration", Options{Compiled: NodeList{FileName: "foo.js", Nodes: decl.Statements}}},
		{"empty compiled", Options{Compiled: NodeList{FileName: "foo.js"}, Declaration: decl}},
		{"missing file name", Options{Compiled: NodeList{Nodes: decl.Statements}, Declaration: decl}},
		{"typed nil file", Options{Compiled: (*SourceFile)(nil), Declaration: decl}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New().Reassemble(tt.opts)
			require.ErrorIs(t, err, ErrMalformedInput)
			assert.Nil(t, res)
		})
	}
}

func TestReassemble_NilStatementIsInvariant(t *testing.T) {
	decl := parseSource(t, "foo.d.ts", "declare const a: number;\n")
	res, err := New().Reassemble(Options{
		Compiled:    NodeList{FileName: "foo.js", Nodes: []Statement{nil}},
		Declaration: decl,
	})
	require.ErrorIs(t, err, ErrInvariant)
	assert.Nil(t, res)
}

type upperPrinter struct{}

func (upperPrinter) Print(file *SourceFile) string {
	return strings.ToUpper(printer.New().Print(file))
}

func TestReassemble_WithPrinter(t *testing.T) {
	res, err := New(WithPrinter(upperPrinter{})).Reassemble(Options{
		Compiled:    parseSource(t, "foo.js", "let x = 1;\n"),
		Declaration: parseSource(t, "foo.d.ts", "declare let x: number;\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "LET X: NUMBER = 1;\n", res.Content)
}

func TestReassemble_WithIndent(t *testing.T) {
	res, err := New(WithIndent("\t")).Reassemble(Options{
		Compiled:    parseSource(t, "foo.js", "class A {\n  x;\n}\n"),
		Declaration: parseSource(t, "foo.d.ts", "declare class A {\n  x: number;\n}\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "class A {\n\tx: number;\n}\n", res.Content)
}

func TestReassemble_Fixture(t *testing.T) {
	ctx := context.Background()
	p := parse.New()
	read := func(name string) *SourceFile {
		path := filepath.Join("testdata", name)
		src, err := os.ReadFile(path)
		require.NoError(t, err)
		file, err := p.Parse(ctx, path, src)
		require.NoError(t, err)
		return file
	}

	res, err := New().Reassemble(Options{Compiled: read("foo.js"), Declaration: read("foo.d.ts")})
	require.NoError(t, err)

	for _, want := range []string{
		"export class TypescriptLanguageService implements ITypescriptLanguageService {",
		"constructor(moduleUtil: IModuleUtil, pathUtil: IPathUtil, fileLoader: IFileLoader, options?: Partial<ITypescriptLanguageServiceOptions>) {",
		"public excludeFiles(match: RegExp | Iterable<RegExp>): void {",
		"public addFile({ path, from = process.cwd(), content, addImportedFiles }: ITypescriptLanguageServiceAddFileOptions): NodeArray<Statement> {",
		"private isExcluded(filepath) {",
		"public getScriptSnapshot(fileName: string): IScriptSnapshot | undefined {",
		"\n\tprivate resolvePath(filePath, from?) {",
	} {
		assert.Contains(t, res.Content, want)
	}
	assert.NotContains(t, res.Content, "declare")
	assert.NotContains(t, res.Content, "\n    ", "members follow the compiled file's tab indentation")
	assert.True(t, strings.HasPrefix(res.Content, "import { createDocumentRegistry"))
}

func TestReassemble_AnonymousDefaultFunction(t *testing.T) {
	res := reassembleSources(t,
		"export default function (a) { return a; }\n",
		"export default function (a: string): string;\n",
	)
	assert.Equal(t, "export default function(a: string): string { return a; }\n", res.Content)
	assert.Equal(t, Stats{Statements: 1, Matched: 1}, res.Stats)
}

func TestReassemble_RecoveredDeclarationIsReported(t *testing.T) {
	res := reassembleSources(t,
		"export const a = load();\nexport function f(a) {}\n",
		"export declare const a: import(\"x\").Y<Z>;\nexport declare function f(a: string): void;\n",
	)
	assert.Contains(t, res.Content, "export const a = load();")
	assert.Contains(t, res.Content, "export function f(a: string): void {}")

	var codes []DiagnosticCode
	for _, d := range res.Diagnostics {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, CodeUnsupportedKind)
}

func TestReassemble_StaticAndInstanceMembers(t *testing.T) {
	res := reassembleSources(t,
		"class A {\n  static x = 1;\n  x = 2;\n}\n",
		"declare class A {\n  x: string;\n  static x: number;\n}\n",
	)
	assert.Contains(t, res.Content, "    static x: number = 1;\n")
	assert.Contains(t, res.Content, "    x: string = 2;\n")
}

func TestReassemble_DetectsIndent(t *testing.T) {
	res := reassembleSources(t,
		"class A {\n\tx;\n\tm() {\n\t\treturn 1;\n\t}\n}\n",
		"declare class A {\n  x: number;\n  m(): number;\n}\n",
	)
	assert.Equal(t, "class A {\n\tx: number;\n\tm(): number {\n\t\treturn 1;\n\t}\n}\n", res.Content)
}
