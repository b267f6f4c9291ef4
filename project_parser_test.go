package main

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func parseFixture(t *testing.T, content string) *ParseResult {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.vcxproj")
	writeTestFile(t, path, content)
	result, err := ParseProjectFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestParseProjectFile_ItemDefinitionGroupPlatforms(t *testing.T) {
	result := parseFixture(t, `<Project>
  <ItemDefinitionGroup Condition="'$(Configuration)'=='Debug'">
    <Platform>x64</Platform>
    <Platform>Win32</Platform>
    <Platform>x64</Platform>
  </ItemDefinitionGroup>
</Project>
`)
	want := []string{"Win32", "x64"}
	if !reflect.DeepEqual(result.Platforms, want) {
		t.Fatalf("platforms = %v, want %v", result.Platforms, want)
	}
}

func TestParseProjectFile_IgnoresTagsOutsideSections(t *testing.T) {
	result := parseFixture(t, `<Project>
  <Platform>ARM64</Platform>
  <ItemGroup>
    <Platform>ARM</Platform>
  </ItemGroup>
</Project>
`)
	if len(result.Platforms) != 0 {
		t.Fatalf("expected no platforms outside recognized sections, got %v", result.Platforms)
	}
}

func TestParseProjectFile_ProjectConfigurationBlock(t *testing.T) {
	result := parseFixture(t, `<Project>
  <ItemGroup Label="ProjectConfigurations">
    <ProjectConfiguration Include="Debug|Win32">
      <Configuration>Debug</Configuration>
      <Configuration>Release</Configuration>
    </ProjectConfiguration>
  </ItemGroup>
</Project>
`)
	want := []string{"Debug", "Release"}
	if !reflect.DeepEqual(result.Configurations, want) {
		t.Fatalf("configurations = %v, want %v", result.Configurations, want)
	}
}

func TestParseProjectFile_ConfigurationLabeledPropertyGroup(t *testing.T) {
	result := parseFixture(t, `<Project>
  <PropertyGroup Label="Configuration">
    <Platform>ARM64</Platform>
  </PropertyGroup>
  <PropertyGroup>
    <Platform>Itanium</Platform>
  </PropertyGroup>
</Project>
`)
	want := []string{"ARM64"}
	if !reflect.DeepEqual(result.Platforms, want) {
		t.Fatalf("platforms = %v, want %v", result.Platforms, want)
	}
}

func TestParseProjectFile_SameLineOpenClose(t *testing.T) {
	// A line that both opens and closes a container resolves close-last, so
	// its inline tags are not captured and capture ends off.
	result := parseFixture(t, `<Project>
  <ItemDefinitionGroup Condition="'$(Configuration)'=='Debug'"><Platform>x64</Platform></ItemDefinitionGroup>
  <Platform>Win32</Platform>
</Project>
`)
	if len(result.Platforms) != 0 {
		t.Fatalf("expected no platforms, got %v", result.Platforms)
	}
}

func TestParseProjectFile_RealisticProject(t *testing.T) {
	result := parseFixture(t, sampleVcxproj)
	wantPlatforms := []string{"Win32", "x64"}
	wantConfigs := []string{"Debug", "Release"}
	if !reflect.DeepEqual(result.Platforms, wantPlatforms) {
		t.Fatalf("platforms = %v, want %v", result.Platforms, wantPlatforms)
	}
	if !reflect.DeepEqual(result.Configurations, wantConfigs) {
		t.Fatalf("configurations = %v, want %v", result.Configurations, wantConfigs)
	}
	// <PlatformToolset> and <ConfigurationType> must never leak into the axes
	for _, p := range result.Platforms {
		if p == "v143" {
			t.Fatal("PlatformToolset value captured as a platform")
		}
	}
	for _, c := range result.Configurations {
		if c == "Application" {
			t.Fatal("ConfigurationType value captured as a configuration")
		}
	}
}

func TestParseProjectFile_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "App.vcxproj")
	writeTestFile(t, path, sampleVcxproj)

	first, err := ParseProjectFile(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ParseProjectFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parse is not idempotent: %v vs %v", first, second)
	}
}

func TestParseProjectFile_SortedOutput(t *testing.T) {
	result := parseFixture(t, `<Project>
  <ItemGroup Label="ProjectConfigurations">
    <ProjectConfiguration Include="RelWithDebInfo|x64">
      <Configuration>RelWithDebInfo</Configuration>
      <Platform>x64</Platform>
    </ProjectConfiguration>
    <ProjectConfiguration Include="Debug|ARM64">
      <Configuration>Debug</Configuration>
      <Platform>ARM64</Platform>
    </ProjectConfiguration>
    <ProjectConfiguration Include="MinSizeRel|Win32">
      <Configuration>MinSizeRel</Configuration>
      <Platform>Win32</Platform>
    </ProjectConfiguration>
  </ItemGroup>
</Project>
`)
	if !sort.StringsAreSorted(result.Platforms) {
		t.Fatalf("platforms not sorted: %v", result.Platforms)
	}
	if !sort.StringsAreSorted(result.Configurations) {
		t.Fatalf("configurations not sorted: %v", result.Configurations)
	}
}

func TestParseProjectFile_EmptyMetadataIsNotAnError(t *testing.T) {
	result := parseFixture(t, "<Project>\n</Project>\n")
	if len(result.Platforms) != 0 || len(result.Configurations) != 0 {
		t.Fatalf("expected empty result, got %v", result)
	}
}

func TestParseProjectFile_UnreadableFile(t *testing.T) {
	path := filepath.Join(os.TempDir(), "vcpick_missing_dir", "missing.vcxproj")
	result, err := ParseProjectFile(path)
	if err == nil {
		t.Fatal("expected error for unreadable file")
	}
	if result == nil {
		t.Fatal("result must be non-nil even on error")
	}
	if len(result.Platforms) != 0 || len(result.Configurations) != 0 {
		t.Fatalf("expected empty result on error, got %v", result)
	}
}
