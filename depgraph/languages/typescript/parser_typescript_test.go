package typescript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/includedeps/depgraph/languages/javascript"
)

func TestParseTypeScriptImports_Basic(t *testing.T) {
	source := `
import { Handler } from 'aws-lambda';
import { format } from './format';
import * as path from 'path';

export const handler: Handler = async () => format(path.sep);
`
	imports, err := ParseTypeScriptImports([]byte(source), false)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"aws-lambda", "./format", "path"}, extractPaths(imports))
}

func TestParseTypeScriptImports_TypeOnly(t *testing.T) {
	source := `
import type { Config } from './config';
import { load } from './loader';
export type { Shape } from './shapes';
`
	imports, err := ParseTypeScriptImports([]byte(source), false)

	require.NoError(t, err)
	require.Len(t, imports, 3)

	byPath := map[string]javascript.Import{}
	for _, imp := range imports {
		byPath[imp.Path] = imp
	}
	assert.True(t, byPath["./config"].IsTypeOnly)
	assert.False(t, byPath["./loader"].IsTypeOnly)
	assert.True(t, byPath["./shapes"].IsTypeOnly)
}

func TestParseTypeScriptImports_TSX(t *testing.T) {
	source := `
import React from 'react';
import { Button } from './Button';

export const App = () => <Button label="ok" />;
`
	imports, err := ParseTypeScriptImports([]byte(source), true)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"react", "./Button"}, extractPaths(imports))
}

func TestParseTypeScriptImports_Require(t *testing.T) {
	source := `
const legacy = require('legacy-lib');
`
	imports, err := ParseTypeScriptImports([]byte(source), false)

	require.NoError(t, err)
	assert.Equal(t, []string{"legacy-lib"}, extractPaths(imports))
}

func TestTypeScriptImports_ValidFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "handler.ts")
	require.NoError(t, os.WriteFile(tmpFile, []byte("import { x } from './x';\n"), 0644))

	imports, err := TypeScriptImports(tmpFile)

	require.NoError(t, err)
	assert.Equal(t, []string{"./x"}, extractPaths(imports))
}

func TestModule_SpecifiersDropsTypeOnlyAndBuiltins(t *testing.T) {
	source := `
import type { Event } from './types';
import fs from 'node:fs';
import { client } from 'test-dep';
import { helper } from './helper';
`
	specifiers, err := Module{}.Specifiers([]byte(source), ".ts")

	require.NoError(t, err)
	assert.Equal(t, []string{"test-dep", "./helper"}, specifiers)
}

func extractPaths(imports []javascript.Import) []string {
	paths := make([]string, len(imports))
	for i, imp := range imports {
		paths[i] = imp.Path
	}
	return paths
}
