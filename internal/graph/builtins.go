package graph

import "github.com/vlang-tools/semgraph/internal/importer"

// placeholderAllowlist holds the builtin names that get file_version = -1
// instead of the ordinary placeholder file_version = 0, so that any real
// declaration — even one arriving at file_version 0 — always wins the
// staleness check in update_module_symbol (§6 "Special identifier
// conventions").
var placeholderAllowlist = map[string]bool{
	"IError": true,
	"string": true,
	"array":  true,
	"map":    true,
}

// builtinPlaceholderFile is the virtual file every synthesized builtin and
// placeholder type lives in.
const builtinPlaceholderFile = "/builtin/placeholder.vv"

const builtinDir = ""

// BootstrapBuiltins registers the primitive types, the []string and none
// symbols the walker relies on as a fallback, and wires the builtin module
// into auto_imports (§6, component H). Grounded on the teacher's
// Runtime.globals bootstrap in internal/runtime/runtime.go, which likewise
// seeds a fixed set of names into a fresh environment before any user code
// runs — reworked here from Risor global values into Store symbols.
func (s *Store) BootstrapBuiltins() {
	importer.RegisterBuiltin(s)

	fileID := s.InsertFilePath(builtinPlaceholderFile)

	primitives := []string{
		"void", "bool", "i8", "i16", "int", "i64", "u8", "u16", "u32", "u64",
		"f32", "f64", "string", "rune", "byte", "voidptr", "charptr",
	}
	for _, name := range primitives {
		s.registerBuiltinPlaceholder(fileID, name)
	}

	// none is the sentinel value for an absent optional, not a type;
	// registered as a global constant-shaped placeholder so find_symbol
	// can resolve bare `none` literals.
	noneID := s.Symbols.CreateNewSymbolWith(Symbol{
		Name: "none", Kind: KindPlaceholder, Access: AccessGlobal,
		IsConst: true, FileID: fileID, FileVersion: -1,
		Parent: VoidSymID, ReturnSym: VoidSymID, Scope: EmptyScopeID,
	})
	s.Symbols.AddSymbolToModule(builtinDir, noneID)

	stringSym := s.Symbols.GetInfoByName(builtinDir, "string")
	s.registerDerivedArray(fileID, stringSym.ID, "[]string")

	arraySym := s.registerBuiltinPlaceholder(fileID, "array")
	mapSym := s.registerBuiltinPlaceholder(fileID, "map")
	chanSym := s.registerBuiltinPlaceholder(fileID, "chan")
	errorSym := s.registerBuiltinPlaceholder(fileID, "IError")

	// §3's base_symbol_locations: field/method lookups against []T,
	// map[K]V, chan T, and ?T redirect through these four placeholders
	// instead of failing against the derived symbol's own empty children.
	s.RegisterBaseSymbolLocation("", "", KindArray, builtinDir)
	s.RegisterBaseSymbolLocation("", "", KindMap, builtinDir)
	s.RegisterBaseSymbolLocation("", "", KindChan, builtinDir)
	s.RegisterBaseSymbolLocation("", "", KindOptional, builtinDir)
	_ = arraySym
	_ = mapSym
	_ = chanSym
	_ = errorSym
}

func (s *Store) registerBuiltinPlaceholder(fileID int, name string) Symbol {
	version := int64(0)
	if placeholderAllowlist[name] {
		version = -1
	}
	id := s.Symbols.CreateNewSymbolWith(Symbol{
		Name: name, Kind: KindPlaceholder, Access: AccessPublic,
		FileID: fileID, FileVersion: version,
		Parent: VoidSymID, ReturnSym: VoidSymID, Scope: EmptyScopeID,
	})
	s.Symbols.AddSymbolToModule(builtinDir, id)
	return s.Symbols.GetInfo(id)
}

func (s *Store) registerDerivedArray(fileID int, elemID int64, printableName string) Symbol {
	id := s.Symbols.CreateNewSymbolWith(Symbol{
		Name: printableName, Kind: KindArray, Access: AccessPublic,
		FileID: fileID, FileVersion: -1,
		Parent: VoidSymID, ReturnSym: VoidSymID, Scope: EmptyScopeID,
	})
	s.Symbols.AddChild(id, elemID)
	s.Symbols.AddSymbolToModule(builtinDir, id)
	return s.Symbols.GetInfo(id)
}
