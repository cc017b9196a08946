package kg

import "context"

// Seed merges the demo reference dataset. Idempotent: running it twice
// leaves the graph unchanged.
func (s *Service) Seed(ctx context.Context) error {
	query := `
MERGE (m:Material {name: "Concrete"})
  ON CREATE SET m.description = "A composite construction material of cement, aggregate and water.",
                m.common_applications = "Bridges, buildings, dams, tunnels."
MERGE (m2:Material {name: "Steel"})
  ON CREATE SET m2.description = "An iron alloy widely used for structural members.",
                m2.common_applications = "Beams, pipelines, pressure vessels."
MERGE (m3:Material {name: "Wood"})
  ON CREATE SET m3.description = "A natural fibrous structural material.",
                m3.common_applications = "Frames, utility poles, heritage structures."

MERGE (d1:Deterioration {name: "Cracking"})
  ON CREATE SET d1.detailed_description = "A linear fracture through the material surface or volume."
MERGE (d2:Deterioration {name: "Corrosion"})
  ON CREATE SET d2.detailed_description = "Electrochemical degradation, typically of embedded or exposed metal."
MERGE (d3:Deterioration {name: "Delamination"})
  ON CREATE SET d3.detailed_description = "Separation of layers within the material."

MERGE (e1:Environment {name: "Humid"})
MERGE (e2:Environment {name: "Dry"})
MERGE (e3:Environment {name: "Submerged"})
MERGE (e4:Environment {name: "High Temperature"})

MERGE (n1:NDTMethod {name: "Ultrasonic Testing"})
  ON CREATE SET n1.description = "Uses high-frequency sound waves to detect internal flaws.",
                n1.cost_estimate = "Medium",
                n1.category = "Volumetric",
                n1.detection_capabilities = "Internal and surface flaws such as cracks and voids.",
                n1.applicable_materials_note = "Requires good acoustic coupling to the surface.",
                n1.method_limitations = "Requires a skilled operator; surface must be accessible."
MERGE (n2:NDTMethod {name: "GPR"})
  ON CREATE SET n2.description = "Ground-penetrating radar images subsurface features with radio pulses.",
                n2.cost_estimate = "High",
                n2.category = "Volumetric",
                n2.detection_capabilities = "Voids, rebar, moisture variation.",
                n2.method_limitations = "Resolution drops with depth; conductive materials attenuate signal."
MERGE (n3:NDTMethod {name: "Thermography"})
  ON CREATE SET n3.description = "Infrared imaging of surface temperature gradients.",
                n3.cost_estimate = "Medium",
                n3.category = "Surface",
                n3.detection_capabilities = "Delamination, moisture ingress, insulation defects.",
                n3.method_limitations = "Sensitive to ambient conditions and emissivity."
MERGE (n4:NDTMethod {name: "Acoustic Emission"})
  ON CREATE SET n4.description = "Listens for stress waves released by active defects.",
                n4.cost_estimate = "High",
                n4.category = "Volumetric",
                n4.detection_capabilities = "Active crack growth and fiber breakage.",
                n4.method_limitations = "Only detects active defects; noisy environments interfere."
MERGE (n5:NDTMethod {name: "Visual Inspection"})
  ON CREATE SET n5.description = "The oldest and most common NDT method.",
                n5.cost_estimate = "Low",
                n5.category = "Surface",
                n5.detection_capabilities = "Surface-breaking defects only.",
                n5.method_limitations = "Only detects surface-breaking defects; operator dependent."

MERGE (s1:Sensor {name: "Acoustic Sensor"})
MERGE (s2:Sensor {name: "Thermal Camera"})
MERGE (s3:Sensor {name: "Moisture Sensor"})

MERGE (r1:RiskType {name: "Safety Hazard - Working at Heights"})
  ON CREATE SET r1.risk_description = "Risk of falls during elevated inspections.",
                r1.mitigation_suggestion = "Use fall arrest systems and trained personnel."
MERGE (r2:RiskType {name: "Equipment Accessibility Issue"})
  ON CREATE SET r2.risk_description = "The inspection area may be difficult to access with equipment.",
                r2.mitigation_suggestion = "Plan access routes and use portable units."

MERGE (m)-[:HAS_DETERIORATION_MECHANISM]->(d1)
MERGE (m)-[:HAS_DETERIORATION_MECHANISM]->(d2)
MERGE (m)-[:HAS_DETERIORATION_MECHANISM]->(d3)
MERGE (m2)-[:HAS_DETERIORATION_MECHANISM]->(d2)

MERGE (d1)-[:DETECTED_BY]->(n1)
MERGE (d1)-[:DETECTED_BY]->(n2)
MERGE (d2)-[:DETECTED_BY]->(n3)
MERGE (d3)-[:DETECTED_BY]->(n4)

MERGE (n1)-[:REQUIRES_ENVIRONMENT]->(e1)
MERGE (n2)-[:REQUIRES_ENVIRONMENT]->(e1)
MERGE (n3)-[:REQUIRES_ENVIRONMENT]->(e4)
MERGE (n4)-[:REQUIRES_ENVIRONMENT]->(e2)

MERGE (s1)-[:RECOMMENDED_FOR]->(n4)
MERGE (s2)-[:RECOMMENDED_FOR]->(n3)
MERGE (s3)-[:RECOMMENDED_FOR]->(n1)

MERGE (n5)-[:HAS_POTENTIAL_RISK]->(r1)
MERGE (n1)-[:HAS_POTENTIAL_RISK]->(r2)
`
	_, err := s.writeRecords(ctx, query, nil)
	if err != nil {
		return err
	}
	s.log.Info("Seeded demo knowledge graph")
	return nil
}
