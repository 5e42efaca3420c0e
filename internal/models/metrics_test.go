package models

import "testing"

func TestSensorData_SetKeepsOrder(t *testing.T) {
	var d SensorData
	d.StartAdapter("coretemp_isa_0000")
	d.Set("coretemp_isa_0000", "Core 0", 102)
	d.Set("coretemp_isa_0000", "Core 1", 104)
	d.StartAdapter("acpitz_acpi_0")
	d.Set("acpitz_acpi_0", "temp1", 80.6)
	d.Set("coretemp_isa_0000", "Core 0", 110)

	got := d.Readings()
	want := []SensorReading{
		{"coretemp_isa_0000", "Core 0", 110},
		{"coretemp_isa_0000", "Core 1", 104},
		{"acpitz_acpi_0", "temp1", 80.6},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d readings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("reading %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSensorData_RestartAdapterResetsReadings(t *testing.T) {
	var d SensorData
	d.StartAdapter("nvme_pci_0100")
	d.Set("nvme_pci_0100", "Composite", 95)
	d.StartAdapter("other")
	d.StartAdapter("nvme_pci_0100")

	if len(d.Adapters) != 2 {
		t.Fatalf("adapters = %d, want 2", len(d.Adapters))
	}
	if d.Adapters[0].Name != "nvme_pci_0100" {
		t.Errorf("restarted adapter moved to position %q", d.Adapters[0].Name)
	}
	if len(d.Adapters[0].Readings) != 0 {
		t.Errorf("restarted adapter kept %d readings", len(d.Adapters[0].Readings))
	}
}

func TestSensorData_Empty(t *testing.T) {
	var d SensorData
	if !d.Empty() {
		t.Error("zero SensorData should be empty")
	}
	d.StartAdapter("x")
	if d.Empty() {
		t.Error("SensorData with an adapter should not be empty")
	}
}
